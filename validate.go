package cachestore

import "context"

// valid runs cbs in order and stops at the first one that does not hold.
// An unregistered validator or a validator error counts as invalid.
func (s *storage) valid(ctx context.Context, storageKey string, cbs []Callback) bool {
	for _, cb := range cbs {
		fn, ok := s.validators[cb.Name]
		if !ok {
			s.log.Warn("unknown validator", Fields{"key": storageKey, "validator": cb.Name})
			return false
		}
		ok, err := fn(ctx, cb.Args)
		if err != nil {
			s.log.Debug("validator failed", Fields{"key": storageKey, "validator": cb.Name, "err": err})
			return false
		}
		if !ok {
			return false
		}
	}
	return true
}
