package model

import "ledger/internal/ledger"

type OpenAccountsInput struct {
	AccountIDs []uint64
}

type OpenAccountsOutput struct {
	Opened []ledger.AccountID
}

type ApplyInput struct {
	UserID  ledger.AccountID
	Request ledger.Request
}

type ApplyOutput struct {
	Success      bool
	EventID      string
	ErrorCode    string
	ErrorMessage string
}

type GetBalanceInput struct {
	UserID ledger.AccountID
}

type GetBalanceOutput struct {
	UserID  ledger.AccountID
	Balance ledger.Amount
}

type ListTransactionsInput struct {
	UserID ledger.AccountID
}

type ListTransactionsOutput struct {
	Number       int64
	Transactions []ledger.Transaction
}
