package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columnNames = []string{
	"list_sr_no", "set_no", "set_2026", "first_name", "surname", "name", "country",
	"state_assoc", "dob", "age", "specialism", "batting_style", "bowling_style",
	"test_caps", "odi_caps", "t20_caps", "ipl", "team_2025", "ipl_2025", "cua",
	"reserve_price", "batting_form", "bowling_form",
}

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewClientFromDB(sqlDB), mock
}

func hoodaRow(rows *sqlmock.Rows) *sqlmock.Rows {
	return rows.AddRow(
		int64(9), int64(2), "AL1", "Deepak", "Hooda", "Deepak Hooda", "India",
		"RCA", "19/04/1995", int64(30), "ALL-ROUNDER", "RHB", "RIGHT ARM Off Spin",
		nil, int64(10), int64(21), int64(125), "CSK", int64(7), "Capped",
		"75", "{45*,DNB,12}", nil,
	)
}

func TestSearchPlayers(t *testing.T) {
	client, mock := newMockClient(t)

	rows := hoodaRow(sqlmock.NewRows(columnNames))
	mock.ExpectQuery(`FROM players WHERE name ILIKE \$1 ORDER BY list_sr_no ASC LIMIT \$2`).
		WithArgs("%hood%", 10).
		WillReturnRows(rows)

	players, err := client.SearchPlayers(context.Background(), "hood", 10)
	require.NoError(t, err)
	require.Len(t, players, 1)

	p := players[0]
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, "Deepak Hooda", p.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 30, *p.Age)
	assert.Nil(t, p.TestCaps)
	require.NotNil(t, p.T20Caps)
	assert.Equal(t, 21, *p.T20Caps)
	assert.Equal(t, []string{"45*", "DNB", "12"}, p.BattingForm)
	assert.Nil(t, p.BowlingForm)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPlayers_EscapesWildcards(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM players WHERE name ILIKE`).
		WithArgs(`%100\%%`, 10).
		WillReturnRows(sqlmock.NewRows(columnNames))

	players, err := client.SearchPlayers(context.Background(), "100%", 10)
	require.NoError(t, err)
	assert.Empty(t, players)
	assert.NotNil(t, players)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPlayers_QueryError(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM players`).WillReturnError(errors.New("connection refused"))

	_, err := client.SearchPlayers(context.Background(), "kohli", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query players")
}

func TestGetPlayerBySerial(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM players WHERE list_sr_no = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(hoodaRow(sqlmock.NewRows(columnNames)))

	p, err := client.GetPlayerBySerial(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Hooda", p.Surname)
	require.NotNil(t, p.Team2025)
	assert.Equal(t, "CSK", *p.Team2025)
}

func TestGetPlayerBySerial_NotFound(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM players WHERE list_sr_no = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(columnNames))

	p, err := client.GetPlayerBySerial(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetPlayerByName(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("deepak hooda").
		WillReturnRows(hoodaRow(sqlmock.NewRows(columnNames)))

	p, err := client.GetPlayerByName(context.Background(), "  deepak hooda ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(9), p.ID)
}

func TestUpsertPlayers(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(`INSERT INTO players \(list_sr_no, .+\) VALUES \(\$1, .+\), \(\$24, .+\) ON CONFLICT \(list_sr_no\) DO UPDATE SET .*batting_form = COALESCE`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := client.UpsertPlayers(context.Background(), []models.Player{
		{ID: 1, FirstName: "Jos", Surname: "Buttler", Name: "Jos Buttler"},
		{ID: 2, FirstName: "Shreyas", Surname: "Iyer", Name: "Shreyas Iyer", BattingForm: []string{"97*"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPlayers_Empty(t *testing.T) {
	client, mock := newMockClient(t)

	n, err := client.UpsertPlayers(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\_b\%c\\d`, escapeLike(`a_b%c\d`))
	assert.Equal(t, "kohli", escapeLike("kohli"))
}
