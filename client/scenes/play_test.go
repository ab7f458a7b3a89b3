package scenes

import (
	"testing"

	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
)

func TestNewestFirst(t *testing.T) {
	saves := []*models.Save{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := newestFirst(saves, 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "c", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	}
	assert.Len(t, newestFirst(saves, 10), 3)
	assert.Empty(t, newestFirst(nil, 3))
}
