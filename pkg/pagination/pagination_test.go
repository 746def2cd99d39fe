package pagination

import (
	"math"
	"net/url"
	"testing"

	"vidtube/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{DefaultLimit: 10, MaxLimit: 100}

func TestFromQuery_Defaults(t *testing.T) {
	req, err := FromQuery(url.Values{}, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.Limit)
	assert.Equal(t, 0, req.Offset())
}

func TestFromQuery_ClampsLimit(t *testing.T) {
	req, err := FromQuery(url.Values{"page": {"2"}, "limit": {"500"}}, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 100, req.Limit)
	assert.Equal(t, 100, req.Offset())
}

func TestFromQuery_RejectsBadValues(t *testing.T) {
	for _, values := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"ten"}},
	} {
		_, err := FromQuery(values, testConfig)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument), "%v", values)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 20, Request{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Request{Page: 1, Limit: 25}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(3), TotalPages(25, 10))
	assert.Equal(t, int64(0), TotalPages(5, 0))
}

func TestNewPage_OutOfRangeKeepsTotals(t *testing.T) {
	page := NewPage[string](nil, Request{Page: 4, Limit: 10}, 25)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, 4, page.Page)
}

func TestOffset_SaturatesInsteadOfWrapping(t *testing.T) {
	req, err := FromQuery(url.Values{"page": {"4611686018427387905"}, "limit": {"4"}}, testConfig)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, req.Offset())

	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt, Limit: 100}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt/2 + 2, Limit: 2}.Offset())
	assert.Equal(t, (math.MaxInt/2)*2, Request{Page: math.MaxInt/2 + 1, Limit: 2}.Offset())
}
