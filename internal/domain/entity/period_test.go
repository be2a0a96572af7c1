package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/bills-api/internal/domain/entity"
)

func TestDateString(t *testing.T) {
	d := entity.Date{Year: 2024, Month: 3, Day: 1}
	assert.Equal(t, "01.03.2024", d.String())
	assert.False(t, d.IsZero())
	assert.True(t, entity.Date{}.IsZero())
}

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		month int
		year  int
		want  string
	}{
		{1, 2024, "Январь 2024 г."},
		{3, 2024, "Март 2024 г."},
		{12, 2025, "Декабрь 2025 г."},
	}
	for _, tc := range cases {
		p := entity.Period{BeginDate: entity.Date{Year: tc.year, Month: tc.month, Day: 1}}
		assert.Equal(t, tc.want, p.Label())
	}
}

func TestAggregateStats(t *testing.T) {
	agg := entity.NewAggregate()
	agg.Houses["1"] = &entity.House{
		ID:      "1",
		Printed: true,
		Accounts: map[string]*entity.Account{
			"a": {Key: "a", Printed: true},
			"b": {Key: "b", Printed: true},
		},
	}
	agg.Houses["2"] = &entity.House{
		ID: "2",
		Accounts: map[string]*entity.Account{
			"c": {Key: "c"},
		},
	}

	s := agg.Stats()
	assert.Equal(t, 2, s.Houses)
	assert.Equal(t, 1, s.UnprintedHouses)
	assert.Equal(t, 3, s.Accounts)
	assert.Equal(t, 1, s.UnprintedAccounts)
}
