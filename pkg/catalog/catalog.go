package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/limaJavier/eligibility/pkg/model"
)

//go:embed catalog.yaml
var data []byte

var (
	once     sync.Once
	defaults *model.Catalog
)

// Default returns the curriculum shipped with the binary. It is parsed once and shared, which is safe because a catalog is never mutated
func Default() *model.Catalog {
	once.Do(func() {
		catalog, err := model.CatalogFromBytes(data)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaults = catalog
	})
	return defaults
}

// Raw returns a copy of the embedded catalog document
func Raw() []byte {
	return append([]byte{}, data...)
}
