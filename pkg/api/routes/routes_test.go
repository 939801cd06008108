package routes

import (
	"testing"

	"github.com/itinera/itinera/pkg/directory"
	"github.com/stretchr/testify/assert"
)

func TestSetupInitialisesSharedHandlerState(t *testing.T) {
	Setup(directory.NewResolver())

	// handlers run concurrently, so everything they share must exist before
	// the server starts serving
	assert.NotNil(t, resolver)
	assert.NotNil(t, frontierCache)
}

func TestQueryInt64(t *testing.T) {
	assert.Equal(t, int64(120), queryInt64("", 120), "missing value falls back")
	assert.Equal(t, int64(120), queryInt64("not-a-number", 120), "garbage falls back")
	assert.Equal(t, int64(1700000000), queryInt64("1700000000", 0))

	// unix timestamps beyond 32 bits must survive intact
	assert.Equal(t, int64(4102444800), queryInt64("4102444800", 0))
	assert.Equal(t, int64(-60), queryInt64("-60", 0))
}
