package controllers

import (
	models "Veinticuatro/models/postgres"
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Recent finished matches for a user
// @Tags matches
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} object{id=string,winner=string,loser=string,reason=string}
// @Router /users/{username}/matches [get]
func GetUserMatches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var records []models.MatchRecord
		err := db.Where("winner_username = ? OR loser_username = ?", username, username).
			Order("played_at DESC").Limit(20).Find(&records).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching matches"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matches": records})
	}
}

// @Summary Ranking of players by rating
// @Tags matches
// @Produce json
// @Success 200 {array} object{username=string,rating=integer}
// @Router /rankings [get]
func GetRankings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profiles []models.GameProfile
		if err := db.Limit(500).Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profiles"})
			return
		}

		type entry struct {
			Username string `json:"username"`
			Rating   int    `json:"rating"`
			GamesWon int    `json:"games_won"`
		}
		ranking := make([]entry, 0, len(profiles))
		for _, p := range profiles {
			var stats models.ProfileStats
			if len(p.UserStats) > 0 {
				_ = json.Unmarshal(p.UserStats, &stats)
			}
			ranking = append(ranking, entry{Username: p.Username, Rating: stats.Rating, GamesWon: stats.GamesWon})
		}
		sort.Slice(ranking, func(i, j int) bool { return ranking[i].Rating > ranking[j].Rating })
		if len(ranking) > 100 {
			ranking = ranking[:100]
		}

		c.JSON(http.StatusOK, gin.H{"rankings": ranking})
	}
}

// @Summary Directory of live rooms open to spectators
// @Tags matches
// @Produce json
// @Success 200 {array} object{id=string,state=string,player_names=array}
// @Router /rooms [get]
func GetActiveRooms(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := redisClient.ActiveRoomSummaries()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching room directory"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": summaries})
	}
}

// @Summary Authoritative snapshots of the rooms hosted by this process
// @Tags matches
// @Produce json
// @Success 200 {array} object{id=string,state=string,currentRound=integer}
// @Router /rooms/live [get]
func GetLiveRooms(manager *game.RoomManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": manager.ActiveRooms()})
	}
}
