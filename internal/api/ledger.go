package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ledger/internal/ledger"
	"ledger/internal/model"
	"ledger/internal/service"
	"ledger/internal/utils"
)

var ErrMalformedMessage = errors.New("malformed transaction message")

// LedgerHandler turns inbound transaction messages into service calls.
type LedgerHandler struct {
	svc service.LedgerService
}

func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

func (h *LedgerHandler) HandleMessage(ctx context.Context, data []byte) error {
	in, err := DecodeMessage(data)
	if err != nil {
		return err
	}
	_, err = h.svc.Apply(ctx, in)
	return err
}

// DecodeMessage parses and validates a JSON transaction message. Amount
// checks are left to the ledger so that rejection order stays in one place.
func DecodeMessage(data []byte) (model.ApplyInput, error) {
	var msg model.TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return model.ApplyInput{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := utils.ValidateAccountID(msg.UserID); err != nil {
		return model.ApplyInput{}, fmt.Errorf("%w: user_id: %v", ErrMalformedMessage, err)
	}
	if ledger.Kind(msg.Kind) == ledger.KindTransfer {
		if err := utils.ValidateAccountID(msg.TargetID); err != nil {
			return model.ApplyInput{}, fmt.Errorf("%w: target_id: %v", ErrMalformedMessage, err)
		}
	}

	req, err := msg.ToRequest()
	if err != nil {
		return model.ApplyInput{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return model.ApplyInput{UserID: ledger.AccountID(msg.UserID), Request: req}, nil
}
