package memory_test

import (
	"testing"

	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/drivers/memory"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return memory.NewStore()
	})
}
