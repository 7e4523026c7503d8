package memory_test

import (
	"testing"

	"github.com/kristykoh/krispyledger-web/internal/storage/memory"
	"github.com/kristykoh/krispyledger-web/internal/storage/storetest"
)

func TestMemoryStore_Contract(t *testing.T) {
	storetest.Run(t, memory.NewStore())
}
