package record

import (
	"sync"

	"github.com/kompox/dnsresolver/domain"
	"github.com/kompox/dnsresolver/domain/model"
)

// lockStripes is the number of mutexes shared by all zones.
const lockStripes = 256

// Repos bundles repository dependencies used by record use cases.
type Repos struct {
	Record domain.RecordRepository
}

// UseCase provides the authorized record store and its query surface.
type UseCase struct {
	Repos  *Repos
	Owners domain.OwnershipOracle

	zoneLocks [lockStripes]sync.Mutex
}

// lockZone serializes mutating calls on one zone, from authorization to the store write.
// Zones hashing to the same stripe also wait for each other.
func (u *UseCase) lockZone(zone model.ZoneID) func() {
	mu := &u.zoneLocks[zone[0]]
	mu.Lock()
	return mu.Unlock
}
