package models

import "time"

type AccountStatus string

const (
	AccountActive    AccountStatus = "Active"
	AccountInactive  AccountStatus = "Inactive"
	AccountSuspended AccountStatus = "Suspended"
)

type CashInMode string

const (
	CashInEnabled  CashInMode = "Enabled"
	CashInDisabled CashInMode = "Disabled"
)

type DeviceModel string

const (
	DevicePOS DeviceModel = "POS"
	DeviceApp DeviceModel = "App"
)

type WalletStatus string

const (
	WalletActive   WalletStatus = "Active"
	WalletInactive WalletStatus = "Inactive"
	WalletPending  WalletStatus = "Pending"
)

// Retailer is a business account called by agents.
// RetailerID is the external account code (e.g. "RT001"); ID is the row id.
type Retailer struct {
	ID                  int64         `json:"id"`
	RetailerID          string        `json:"retailer_id"`
	Name                string        `json:"name"`
	Mobile              string        `json:"mobile,omitempty"`
	ProjectName         string        `json:"project_name,omitempty"`
	AgentID             *int64        `json:"agent_id,omitempty"`
	Balance             *float64      `json:"balance,omitempty"` // "solde"
	Target              float64       `json:"target"`
	Achieved            float64       `json:"achieved"`
	CreditScore         int           `json:"credit_score"`
	AccountStatus       AccountStatus `json:"account_status"`
	CashInMode          CashInMode    `json:"cash_in_mode"`
	DeviceModel         DeviceModel   `json:"device_model"`
	WalletStatus        WalletStatus  `json:"wallet_status"`
	RechargeMethod      string        `json:"recharge_method,omitempty"`
	PreferredCollection string        `json:"preferred_collection_method,omitempty"`
	Priority            *TaskPriority `json:"priority,omitempty"`
	Comment             string        `json:"comment,omitempty"`
	LastRechargeDate    *time.Time    `json:"last_recharge_date,omitempty"`
	LastCallDate        *time.Time    `json:"last_call_date,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
}

// RetailerSort is one of the orderings offered by the calling screen.
type RetailerSort string

const (
	SortBalanceDesc  RetailerSort = "balance_desc"
	SortBalanceAsc   RetailerSort = "balance_asc"
	SortLastCall     RetailerSort = "last_call"
	SortLastRecharge RetailerSort = "last_recharge"
)

func (s RetailerSort) Valid() bool {
	switch s {
	case SortBalanceDesc, SortBalanceAsc, SortLastCall, SortLastRecharge:
		return true
	}
	return false
}

// RetailerQuery narrows a retailer listing.
type RetailerQuery struct {
	Term    string
	Sort    RetailerSort
	AgentID *int64
}
