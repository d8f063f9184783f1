package zone

import (
	"sync"

	"github.com/kompox/dnsresolver/domain"
)

// Repos bundles repository dependencies used by zone use cases.
type Repos struct {
	Zone   domain.ZoneRepository
	Record domain.RecordRepository
}

// UseCase manages the zone registry that answers ownership questions.
type UseCase struct {
	Repos *Repos

	mu sync.Mutex // serializes registry mutations
}
