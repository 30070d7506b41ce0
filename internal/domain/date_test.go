package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05-03-2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 5, d.Day())

	// định dạng ISO không được chấp nhận trên wire
	_, err = ParseDate("2025-03-05")
	assert.Error(t, err)

	_, err = ParseDate("31-02-2025")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"05-03-2025"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDateInRange(t *testing.T) {
	start := NewDate(2025, time.March, 3)
	end := NewDate(2025, time.March, 9)

	assert.True(t, start.InRange(start, end))
	assert.True(t, end.InRange(start, end))
	assert.True(t, NewDate(2025, time.March, 6).InRange(start, end))
	assert.False(t, NewDate(2025, time.March, 2).InRange(start, end))
	assert.False(t, NewDate(2025, time.March, 10).InRange(start, end))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.March, 5, 13, 45, 0, 0, time.Local)))
	// phần giờ bị cắt bỏ, chỉ giữ lại ngày
	assert.Equal(t, "05-03-2025", d.String())

	require.NoError(t, d.Scan("2025-04-01"))
	assert.Equal(t, "01-04-2025", d.String())

	assert.Error(t, d.Scan(12345))
}
