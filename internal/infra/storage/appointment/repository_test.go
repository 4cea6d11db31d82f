package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/ptr"
)

func TestBuildListQuery_DayLockedForBooking(t *testing.T) {
	from := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	query, args, err := buildListQuery(domain.AppointmentFilter{
		TherapistID:  5,
		From:         &from,
		To:           &to,
		OnlyBlocking: true,
	}, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM appointments")
	assert.Contains(t, query, "therapist_id = $1")
	assert.Contains(t, query, "starts_at < $2")
	assert.Contains(t, query, "ends_at > $3")
	assert.Contains(t, query, "status IN ($4)")
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE"), query)
	assert.Equal(t, []interface{}{int64(5), to, from, "confirmed"}, args)
}

func TestBuildListQuery_ReadOnlyWithoutLock(t *testing.T) {
	query, args, err := buildListQuery(domain.AppointmentFilter{
		TherapistID: 5,
		Status:      ptr.Ptr(domain.StatusCancelled),
		ExcludeID:   ptr.Ptr(int64(9)),
	}, false).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "FOR UPDATE")
	assert.NotContains(t, query, "starts_at <")
	assert.Contains(t, query, "status = $2")
	assert.Contains(t, query, "id <> $3")
	assert.Contains(t, query, "ORDER BY starts_at ASC, id ASC")
	assert.Equal(t, []interface{}{int64(5), domain.StatusCancelled, int64(9)}, args)
}
