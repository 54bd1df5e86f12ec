package observability

import (
	"errors"

	"github.com/geocoder89/userhub/internal/domain/user"
)

// ObserveStore counts a store operation by logical op and outcome. A missing
// record is an expected outcome, not an error class.
func (p *Prom) ObserveStore(op string, fn func() error) error {
	err := fn()

	status := "ok"

	if errors.Is(err, user.ErrNotFound) {
		status = "not_found"
	} else if err != nil {
		status = "error"
	}

	p.StoreOpsTotal.WithLabelValues(op, status).Inc()

	return err
}
