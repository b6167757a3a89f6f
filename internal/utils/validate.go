package utils

import (
	"errors"
	"fmt"
	"math"
)

// MaxAccountID is the largest id that fits the signed 64-bit wire and
// storage representations.
const MaxAccountID = math.MaxInt64

func ValidateAccountID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid account id %d: must be greater than 0", id)
	}
	return nil
}

func ValidateAccountIDs(ids []uint64) error {
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return errors.New("invalid account id 0: must be greater than 0")
		}
		if id > MaxAccountID {
			return fmt.Errorf("invalid account id %d: must not exceed %d", id, uint64(MaxAccountID))
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate account id %d", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
