package timezone_test

import (
	"testing"
	"time"

	"seatq/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestSetLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	timezone.SetLocation(jakarta)
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	assert.Equal(t, jakarta, timezone.Location())
	assert.Equal(t, jakarta, timezone.Now().Location())

	noon := time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01T12:00:00+07:00", timezone.Format(noon, time.RFC3339))
}
