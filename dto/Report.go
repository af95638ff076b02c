package dto

import "github.com/shopspring/decimal"

type MessagingReportRow struct {
	TransactionID string `json:"transactionId"`
	MessageCount  int64  `json:"messageCount"`
	UnreadCount   int64  `json:"unreadCount"`
}

type DepositReportRow struct {
	TransactionID string          `json:"transactionId"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}
