package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockGorm wires a sqlmock connection behind GORM so controllers can be
// exercised without a live PostgreSQL.
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	assert.NoError(t, err)

	return gormDB, mock, func() { db.Close() }
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", Ping)

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "pong", response["message"])
}

func TestGetUserPublicInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gormDB, mock, cleanup := newMockGorm(t)
	defer cleanup()

	router := gin.New()
	router.GET("/users/:username", GetUserPublicInfo(gormDB))

	stats := `{"games_played":10,"games_won":6,"games_lost":4,"rating":150,"correct_solutions":14,"fastest_solve_ms":4200}`
	mock.ExpectQuery(`SELECT \* FROM "game_profiles" WHERE username = \$1`).
		WithArgs("galois", 1).
		WillReturnRows(sqlmock.NewRows([]string{"username", "user_stats", "user_icon", "is_in_a_game"}).
			AddRow("galois", []byte(stats), 3, false))

	req, _ := http.NewRequest("GET", "/users/galois", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "galois", response["username"])
	assert.Equal(t, float64(3), response["icon"])

	statsMap := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(150), statsMap["rating"])
	assert.Equal(t, float64(6), statsMap["games_won"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPublicInfoNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gormDB, mock, cleanup := newMockGorm(t)
	defer cleanup()

	router := gin.New()
	router.GET("/users/:username", GetUserPublicInfo(gormDB))

	mock.ExpectQuery(`SELECT \* FROM "game_profiles" WHERE username = \$1`).
		WithArgs("nobody", 1).
		WillReturnRows(sqlmock.NewRows([]string{"username"}))

	req, _ := http.NewRequest("GET", "/users/nobody", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserMatches(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gormDB, mock, cleanup := newMockGorm(t)
	defer cleanup()

	router := gin.New()
	router.GET("/users/:username/matches", GetUserMatches(gormDB))

	mock.ExpectQuery(`SELECT \* FROM "match_records" WHERE winner_username = \$1 OR loser_username = \$2`).
		WithArgs("galois", "galois", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_type", "winner_username", "loser_username", "reason", "rounds"}).
			AddRow("m-1", "classic", "galois", "abel", "deck_empty", 7).
			AddRow("m-2", "super", "abel", "galois", "forfeit", 3))

	req, _ := http.NewRequest("GET", "/users/galois/matches", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Matches []map[string]interface{} `json:"matches"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Matches, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRankingsSortedByRating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gormDB, mock, cleanup := newMockGorm(t)
	defer cleanup()

	router := gin.New()
	router.GET("/rankings", GetRankings(gormDB))

	mock.ExpectQuery(`SELECT \* FROM "game_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "user_stats", "user_icon", "is_in_a_game"}).
			AddRow("abel", []byte(`{"rating":75,"games_won":3}`), 0, false).
			AddRow("galois", []byte(`{"rating":200,"games_won":8}`), 0, false).
			AddRow("noether", []byte(`{}`), 0, false))

	req, _ := http.NewRequest("GET", "/rankings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Rankings []struct {
			Username string `json:"username"`
			Rating   int    `json:"rating"`
		} `json:"rankings"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Rankings, 3)
	assert.Equal(t, "galois", response.Rankings[0].Username)
	assert.Equal(t, 200, response.Rankings[0].Rating)
	assert.Equal(t, "abel", response.Rankings[1].Username)
	assert.Equal(t, "noether", response.Rankings[2].Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}
