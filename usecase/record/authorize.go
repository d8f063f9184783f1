package record

import (
	"context"
	"fmt"

	"github.com/kompox/dnsresolver/domain/model"
)

// authorize checks that caller currently controls zone.
func (u *UseCase) authorize(ctx context.Context, caller model.Principal, zone model.ZoneID) error {
	if caller == "" {
		return fmt.Errorf("%w: no caller for zone %s", model.ErrNotOwner, zone)
	}
	owner, err := u.Owners.OwnerOf(ctx, zone)
	if err != nil {
		return err
	}
	if owner != caller {
		return fmt.Errorf("%w: %s does not control zone %s", model.ErrNotOwner, caller, zone)
	}
	return nil
}
