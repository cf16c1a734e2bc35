package main

import (
	"fmt"
	"strings"
)

type ColumnKind int

const (
	KindInt ColumnKind = iota
	KindDecimal
	KindString
	KindDate
)

type Column struct {
	Name string
	Kind ColumnKind
}

type Table struct {
	Name    string
	Columns []Column
}

func intColumn(name string) Column     { return Column{Name: name, Kind: KindInt} }
func decimalColumn(name string) Column { return Column{Name: name, Kind: KindDecimal} }
func stringColumn(name string) Column  { return Column{Name: name, Kind: KindString} }
func dateColumn(name string) Column    { return Column{Name: name, Kind: KindDate} }

// SQLType maps a column kind to an engine type. Decimal columns downgrade to
// floating point when floats is set, mirroring how text-typed inputs are
// loaded without decimal support.
func (c Column) SQLType(floats bool) string {
	switch c.Kind {
	case KindInt:
		return "INTEGER"
	case KindDecimal:
		if floats {
			return "REAL"
		}
		return "NUMERIC"
	default:
		return "TEXT"
	}
}

func (t Table) CreateSQL(floats bool) string {
	columns := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		columns = append(columns, fmt.Sprintf("    %v %v", column.Name, column.SQLType(floats)))
	}
	return fmt.Sprintf("CREATE TEMP TABLE %v (\n%v\n)", t.Name, strings.Join(columns, ",\n"))
}

// TableSchemas lists the TPC-DS tables in registration order. The order is
// fixed so setup timing records are deterministic across runs.
func TableSchemas() []Table {
	return []Table{
		{Name: "call_center", Columns: []Column{
			intColumn("cc_call_center_sk"),
			stringColumn("cc_call_center_id"),
			dateColumn("cc_rec_start_date"),
			dateColumn("cc_rec_end_date"),
			intColumn("cc_closed_date_sk"),
			intColumn("cc_open_date_sk"),
			stringColumn("cc_name"),
			stringColumn("cc_class"),
			intColumn("cc_employees"),
			intColumn("cc_sq_ft"),
			stringColumn("cc_hours"),
			stringColumn("cc_manager"),
			intColumn("cc_mkt_id"),
			stringColumn("cc_mkt_class"),
			stringColumn("cc_mkt_desc"),
			stringColumn("cc_market_manager"),
			intColumn("cc_division"),
			stringColumn("cc_division_name"),
			intColumn("cc_company"),
			stringColumn("cc_company_name"),
			stringColumn("cc_street_number"),
			stringColumn("cc_street_name"),
			stringColumn("cc_street_type"),
			stringColumn("cc_suite_number"),
			stringColumn("cc_city"),
			stringColumn("cc_county"),
			stringColumn("cc_state"),
			stringColumn("cc_zip"),
			stringColumn("cc_country"),
			decimalColumn("cc_gmt_offset"),
			decimalColumn("cc_tax_percentage"),
		}},
		{Name: "catalog_page", Columns: []Column{
			intColumn("cp_catalog_page_sk"),
			stringColumn("cp_catalog_page_id"),
			intColumn("cp_start_date_sk"),
			intColumn("cp_end_date_sk"),
			stringColumn("cp_department"),
			intColumn("cp_catalog_number"),
			intColumn("cp_catalog_page_number"),
			stringColumn("cp_description"),
			stringColumn("cp_type"),
		}},
		{Name: "catalog_returns", Columns: []Column{
			intColumn("cr_returned_date_sk"),
			intColumn("cr_returned_time_sk"),
			intColumn("cr_item_sk"),
			intColumn("cr_refunded_customer_sk"),
			intColumn("cr_refunded_cdemo_sk"),
			intColumn("cr_refunded_hdemo_sk"),
			intColumn("cr_refunded_addr_sk"),
			intColumn("cr_returning_customer_sk"),
			intColumn("cr_returning_cdemo_sk"),
			intColumn("cr_returning_hdemo_sk"),
			intColumn("cr_returning_addr_sk"),
			intColumn("cr_call_center_sk"),
			intColumn("cr_catalog_page_sk"),
			intColumn("cr_ship_mode_sk"),
			intColumn("cr_warehouse_sk"),
			intColumn("cr_reason_sk"),
			intColumn("cr_order_number"),
			intColumn("cr_return_quantity"),
			decimalColumn("cr_return_amount"),
			decimalColumn("cr_return_tax"),
			decimalColumn("cr_return_amt_inc_tax"),
			decimalColumn("cr_fee"),
			decimalColumn("cr_return_ship_cost"),
			decimalColumn("cr_refunded_cash"),
			decimalColumn("cr_reversed_charge"),
			decimalColumn("cr_store_credit"),
			decimalColumn("cr_net_loss"),
		}},
		{Name: "catalog_sales", Columns: []Column{
			intColumn("cs_sold_date_sk"),
			intColumn("cs_sold_time_sk"),
			intColumn("cs_ship_date_sk"),
			intColumn("cs_bill_customer_sk"),
			intColumn("cs_bill_cdemo_sk"),
			intColumn("cs_bill_hdemo_sk"),
			intColumn("cs_bill_addr_sk"),
			intColumn("cs_ship_customer_sk"),
			intColumn("cs_ship_cdemo_sk"),
			intColumn("cs_ship_hdemo_sk"),
			intColumn("cs_ship_addr_sk"),
			intColumn("cs_call_center_sk"),
			intColumn("cs_catalog_page_sk"),
			intColumn("cs_ship_mode_sk"),
			intColumn("cs_warehouse_sk"),
			intColumn("cs_item_sk"),
			intColumn("cs_promo_sk"),
			intColumn("cs_order_number"),
			intColumn("cs_quantity"),
			decimalColumn("cs_wholesale_cost"),
			decimalColumn("cs_list_price"),
			decimalColumn("cs_sales_price"),
			decimalColumn("cs_ext_discount_amt"),
			decimalColumn("cs_ext_sales_price"),
			decimalColumn("cs_ext_wholesale_cost"),
			decimalColumn("cs_ext_list_price"),
			decimalColumn("cs_ext_tax"),
			decimalColumn("cs_coupon_amt"),
			decimalColumn("cs_ext_ship_cost"),
			decimalColumn("cs_net_paid"),
			decimalColumn("cs_net_paid_inc_tax"),
			decimalColumn("cs_net_paid_inc_ship"),
			decimalColumn("cs_net_paid_inc_ship_tax"),
			decimalColumn("cs_net_profit"),
		}},
		{Name: "customer", Columns: []Column{
			intColumn("c_customer_sk"),
			stringColumn("c_customer_id"),
			intColumn("c_current_cdemo_sk"),
			intColumn("c_current_hdemo_sk"),
			intColumn("c_current_addr_sk"),
			intColumn("c_first_shipto_date_sk"),
			intColumn("c_first_sales_date_sk"),
			stringColumn("c_salutation"),
			stringColumn("c_first_name"),
			stringColumn("c_last_name"),
			stringColumn("c_preferred_cust_flag"),
			intColumn("c_birth_day"),
			intColumn("c_birth_month"),
			intColumn("c_birth_year"),
			stringColumn("c_birth_country"),
			stringColumn("c_login"),
			stringColumn("c_email_address"),
			intColumn("c_last_review_date_sk"),
		}},
		{Name: "customer_address", Columns: []Column{
			intColumn("ca_address_sk"),
			stringColumn("ca_address_id"),
			stringColumn("ca_street_number"),
			stringColumn("ca_street_name"),
			stringColumn("ca_street_type"),
			stringColumn("ca_suite_number"),
			stringColumn("ca_city"),
			stringColumn("ca_county"),
			stringColumn("ca_state"),
			stringColumn("ca_zip"),
			stringColumn("ca_country"),
			decimalColumn("ca_gmt_offset"),
			stringColumn("ca_location_type"),
		}},
		{Name: "customer_demographics", Columns: []Column{
			intColumn("cd_demo_sk"),
			stringColumn("cd_gender"),
			stringColumn("cd_marital_status"),
			stringColumn("cd_education_status"),
			intColumn("cd_purchase_estimate"),
			stringColumn("cd_credit_rating"),
			intColumn("cd_dep_count"),
			intColumn("cd_dep_employed_count"),
			intColumn("cd_dep_college_count"),
		}},
		{Name: "date_dim", Columns: []Column{
			intColumn("d_date_sk"),
			stringColumn("d_date_id"),
			dateColumn("d_date"),
			intColumn("d_month_seq"),
			intColumn("d_week_seq"),
			intColumn("d_quarter_seq"),
			intColumn("d_year"),
			intColumn("d_dow"),
			intColumn("d_moy"),
			intColumn("d_dom"),
			intColumn("d_qoy"),
			intColumn("d_fy_year"),
			intColumn("d_fy_quarter_seq"),
			intColumn("d_fy_week_seq"),
			stringColumn("d_day_name"),
			stringColumn("d_quarter_name"),
			stringColumn("d_holiday"),
			stringColumn("d_weekend"),
			stringColumn("d_following_holiday"),
			intColumn("d_first_dom"),
			intColumn("d_last_dom"),
			intColumn("d_same_day_ly"),
			intColumn("d_same_day_lq"),
			stringColumn("d_current_day"),
			stringColumn("d_current_week"),
			stringColumn("d_current_month"),
			stringColumn("d_current_quarter"),
			stringColumn("d_current_year"),
		}},
		{Name: "household_demographics", Columns: []Column{
			intColumn("hd_demo_sk"),
			intColumn("hd_income_band_sk"),
			stringColumn("hd_buy_potential"),
			intColumn("hd_dep_count"),
			intColumn("hd_vehicle_count"),
		}},
		{Name: "income_band", Columns: []Column{
			intColumn("ib_income_band_sk"),
			intColumn("ib_lower_bound"),
			intColumn("ib_upper_bound"),
		}},
		{Name: "inventory", Columns: []Column{
			intColumn("inv_date_sk"),
			intColumn("inv_item_sk"),
			intColumn("inv_warehouse_sk"),
			intColumn("inv_quantity_on_hand"),
		}},
		{Name: "item", Columns: []Column{
			intColumn("i_item_sk"),
			stringColumn("i_item_id"),
			dateColumn("i_rec_start_date"),
			dateColumn("i_rec_end_date"),
			stringColumn("i_item_desc"),
			decimalColumn("i_current_price"),
			decimalColumn("i_wholesale_cost"),
			intColumn("i_brand_id"),
			stringColumn("i_brand"),
			intColumn("i_class_id"),
			stringColumn("i_class"),
			intColumn("i_category_id"),
			stringColumn("i_category"),
			intColumn("i_manufact_id"),
			stringColumn("i_manufact"),
			stringColumn("i_size"),
			stringColumn("i_formulation"),
			stringColumn("i_color"),
			stringColumn("i_units"),
			stringColumn("i_container"),
			intColumn("i_manager_id"),
			stringColumn("i_product_name"),
		}},
		{Name: "promotion", Columns: []Column{
			intColumn("p_promo_sk"),
			stringColumn("p_promo_id"),
			intColumn("p_start_date_sk"),
			intColumn("p_end_date_sk"),
			intColumn("p_item_sk"),
			decimalColumn("p_cost"),
			intColumn("p_response_target"),
			stringColumn("p_promo_name"),
			stringColumn("p_channel_dmail"),
			stringColumn("p_channel_email"),
			stringColumn("p_channel_catalog"),
			stringColumn("p_channel_tv"),
			stringColumn("p_channel_radio"),
			stringColumn("p_channel_press"),
			stringColumn("p_channel_event"),
			stringColumn("p_channel_demo"),
			stringColumn("p_channel_details"),
			stringColumn("p_purpose"),
			stringColumn("p_discount_active"),
		}},
		{Name: "reason", Columns: []Column{
			intColumn("r_reason_sk"),
			stringColumn("r_reason_id"),
			stringColumn("r_reason_desc"),
		}},
		{Name: "ship_mode", Columns: []Column{
			intColumn("sm_ship_mode_sk"),
			stringColumn("sm_ship_mode_id"),
			stringColumn("sm_type"),
			stringColumn("sm_code"),
			stringColumn("sm_carrier"),
			stringColumn("sm_contract"),
		}},
		{Name: "store", Columns: []Column{
			intColumn("s_store_sk"),
			stringColumn("s_store_id"),
			dateColumn("s_rec_start_date"),
			dateColumn("s_rec_end_date"),
			intColumn("s_closed_date_sk"),
			stringColumn("s_store_name"),
			intColumn("s_number_employees"),
			intColumn("s_floor_space"),
			stringColumn("s_hours"),
			stringColumn("s_manager"),
			intColumn("s_market_id"),
			stringColumn("s_geography_class"),
			stringColumn("s_market_desc"),
			stringColumn("s_market_manager"),
			intColumn("s_division_id"),
			stringColumn("s_division_name"),
			intColumn("s_company_id"),
			stringColumn("s_company_name"),
			stringColumn("s_street_number"),
			stringColumn("s_street_name"),
			stringColumn("s_street_type"),
			stringColumn("s_suite_number"),
			stringColumn("s_city"),
			stringColumn("s_county"),
			stringColumn("s_state"),
			stringColumn("s_zip"),
			stringColumn("s_country"),
			decimalColumn("s_gmt_offset"),
			// the misspelling is part of the TPC-DS schema
			decimalColumn("s_tax_precentage"),
		}},
		{Name: "store_returns", Columns: []Column{
			intColumn("sr_returned_date_sk"),
			intColumn("sr_return_time_sk"),
			intColumn("sr_item_sk"),
			intColumn("sr_customer_sk"),
			intColumn("sr_cdemo_sk"),
			intColumn("sr_hdemo_sk"),
			intColumn("sr_addr_sk"),
			intColumn("sr_store_sk"),
			intColumn("sr_reason_sk"),
			intColumn("sr_ticket_number"),
			intColumn("sr_return_quantity"),
			decimalColumn("sr_return_amt"),
			decimalColumn("sr_return_tax"),
			decimalColumn("sr_return_amt_inc_tax"),
			decimalColumn("sr_fee"),
			decimalColumn("sr_return_ship_cost"),
			decimalColumn("sr_refunded_cash"),
			decimalColumn("sr_reversed_charge"),
			decimalColumn("sr_store_credit"),
			decimalColumn("sr_net_loss"),
		}},
		{Name: "store_sales", Columns: []Column{
			intColumn("ss_sold_date_sk"),
			intColumn("ss_sold_time_sk"),
			intColumn("ss_item_sk"),
			intColumn("ss_customer_sk"),
			intColumn("ss_cdemo_sk"),
			intColumn("ss_hdemo_sk"),
			intColumn("ss_addr_sk"),
			intColumn("ss_store_sk"),
			intColumn("ss_promo_sk"),
			intColumn("ss_ticket_number"),
			intColumn("ss_quantity"),
			decimalColumn("ss_wholesale_cost"),
			decimalColumn("ss_list_price"),
			decimalColumn("ss_sales_price"),
			decimalColumn("ss_ext_discount_amt"),
			decimalColumn("ss_ext_sales_price"),
			decimalColumn("ss_ext_wholesale_cost"),
			decimalColumn("ss_ext_list_price"),
			decimalColumn("ss_ext_tax"),
			decimalColumn("ss_coupon_amt"),
			decimalColumn("ss_net_paid"),
			decimalColumn("ss_net_paid_inc_tax"),
			decimalColumn("ss_net_profit"),
		}},
		{Name: "time_dim", Columns: []Column{
			intColumn("t_time_sk"),
			stringColumn("t_time_id"),
			intColumn("t_time"),
			intColumn("t_hour"),
			intColumn("t_minute"),
			intColumn("t_second"),
			stringColumn("t_am_pm"),
			stringColumn("t_shift"),
			stringColumn("t_sub_shift"),
			stringColumn("t_meal_time"),
		}},
		{Name: "warehouse", Columns: []Column{
			intColumn("w_warehouse_sk"),
			stringColumn("w_warehouse_id"),
			stringColumn("w_warehouse_name"),
			intColumn("w_warehouse_sq_ft"),
			stringColumn("w_street_number"),
			stringColumn("w_street_name"),
			stringColumn("w_street_type"),
			stringColumn("w_suite_number"),
			stringColumn("w_city"),
			stringColumn("w_county"),
			stringColumn("w_state"),
			stringColumn("w_zip"),
			stringColumn("w_country"),
			decimalColumn("w_gmt_offset"),
		}},
		{Name: "web_page", Columns: []Column{
			intColumn("wp_web_page_sk"),
			stringColumn("wp_web_page_id"),
			dateColumn("wp_rec_start_date"),
			dateColumn("wp_rec_end_date"),
			intColumn("wp_creation_date_sk"),
			intColumn("wp_access_date_sk"),
			stringColumn("wp_autogen_flag"),
			intColumn("wp_customer_sk"),
			stringColumn("wp_url"),
			stringColumn("wp_type"),
			intColumn("wp_char_count"),
			intColumn("wp_link_count"),
			intColumn("wp_image_count"),
			intColumn("wp_max_ad_count"),
		}},
		{Name: "web_returns", Columns: []Column{
			intColumn("wr_returned_date_sk"),
			intColumn("wr_returned_time_sk"),
			intColumn("wr_item_sk"),
			intColumn("wr_refunded_customer_sk"),
			intColumn("wr_refunded_cdemo_sk"),
			intColumn("wr_refunded_hdemo_sk"),
			intColumn("wr_refunded_addr_sk"),
			intColumn("wr_returning_customer_sk"),
			intColumn("wr_returning_cdemo_sk"),
			intColumn("wr_returning_hdemo_sk"),
			intColumn("wr_returning_addr_sk"),
			intColumn("wr_web_page_sk"),
			intColumn("wr_reason_sk"),
			intColumn("wr_order_number"),
			intColumn("wr_return_quantity"),
			decimalColumn("wr_return_amt"),
			decimalColumn("wr_return_tax"),
			decimalColumn("wr_return_amt_inc_tax"),
			decimalColumn("wr_fee"),
			decimalColumn("wr_return_ship_cost"),
			decimalColumn("wr_refunded_cash"),
			decimalColumn("wr_reversed_charge"),
			decimalColumn("wr_account_credit"),
			decimalColumn("wr_net_loss"),
		}},
		{Name: "web_sales", Columns: []Column{
			intColumn("ws_sold_date_sk"),
			intColumn("ws_sold_time_sk"),
			intColumn("ws_ship_date_sk"),
			intColumn("ws_item_sk"),
			intColumn("ws_bill_customer_sk"),
			intColumn("ws_bill_cdemo_sk"),
			intColumn("ws_bill_hdemo_sk"),
			intColumn("ws_bill_addr_sk"),
			intColumn("ws_ship_customer_sk"),
			intColumn("ws_ship_cdemo_sk"),
			intColumn("ws_ship_hdemo_sk"),
			intColumn("ws_ship_addr_sk"),
			intColumn("ws_web_page_sk"),
			intColumn("ws_web_site_sk"),
			intColumn("ws_ship_mode_sk"),
			intColumn("ws_warehouse_sk"),
			intColumn("ws_promo_sk"),
			intColumn("ws_order_number"),
			intColumn("ws_quantity"),
			decimalColumn("ws_wholesale_cost"),
			decimalColumn("ws_list_price"),
			decimalColumn("ws_sales_price"),
			decimalColumn("ws_ext_discount_amt"),
			decimalColumn("ws_ext_sales_price"),
			decimalColumn("ws_ext_wholesale_cost"),
			decimalColumn("ws_ext_list_price"),
			decimalColumn("ws_ext_tax"),
			decimalColumn("ws_coupon_amt"),
			decimalColumn("ws_ext_ship_cost"),
			decimalColumn("ws_net_paid"),
			decimalColumn("ws_net_paid_inc_tax"),
			decimalColumn("ws_net_paid_inc_ship"),
			decimalColumn("ws_net_paid_inc_ship_tax"),
			decimalColumn("ws_net_profit"),
		}},
		{Name: "web_site", Columns: []Column{
			intColumn("web_site_sk"),
			stringColumn("web_site_id"),
			dateColumn("web_rec_start_date"),
			dateColumn("web_rec_end_date"),
			stringColumn("web_name"),
			intColumn("web_open_date_sk"),
			intColumn("web_close_date_sk"),
			stringColumn("web_class"),
			stringColumn("web_manager"),
			intColumn("web_mkt_id"),
			stringColumn("web_mkt_class"),
			stringColumn("web_mkt_desc"),
			stringColumn("web_market_manager"),
			intColumn("web_company_id"),
			stringColumn("web_company_name"),
			stringColumn("web_street_number"),
			stringColumn("web_street_name"),
			stringColumn("web_street_type"),
			stringColumn("web_suite_number"),
			stringColumn("web_city"),
			stringColumn("web_county"),
			stringColumn("web_state"),
			stringColumn("web_zip"),
			stringColumn("web_country"),
			decimalColumn("web_gmt_offset"),
			decimalColumn("web_tax_percentage"),
		}},
	}
}
