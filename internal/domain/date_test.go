package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(2000, time.June, 1)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `"2000-06-01"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.Equal(d))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	require.Error(t, json.Unmarshal([]byte(`"01.06.2000"`), &d))
	require.Error(t, json.Unmarshal([]byte(`20000601`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	loc := time.FixedZone("UTC+3", 3*60*60)
	require.NoError(t, d.Scan(time.Date(2024, 3, 15, 23, 30, 0, 0, loc)))
	require.Equal(t, "2024-03-15", d.String())

	require.NoError(t, d.Scan("2024-03-16"))
	require.Equal(t, "2024-03-16", d.String())

	require.NoError(t, d.Scan([]byte("2024-03-17")))
	require.Equal(t, "2024-03-17", d.String())

	require.NoError(t, d.Scan(nil))
	require.True(t, d.IsZero())

	require.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2024, 1, 2).Value()
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	require.Nil(t, v)
}
