package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/requests"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/gin-gonic/gin"
)

// StatsRepository is implemented by *store.Store.
type StatsRepository interface {
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	RecentDonations(ctx context.Context, limit int) ([]models.Donation, error)
	TotalStats(ctx context.Context) (models.Stats, error)
}

type GoalReader interface {
	Progress(ctx context.Context) (goals.Progress, bool, error)
}

type Censor interface {
	Censor(text string) string
}

// StatsController serves the read-only API used by overlays and dashboards.
type StatsController struct {
	repo   StatsRepository
	goals  GoalReader
	filter Censor
}

func NewStatsController(repo StatsRepository, g GoalReader, f Censor) *StatsController {
	return &StatsController{repo: repo, goals: g, filter: f}
}

func (s *StatsController) GetLeaderboard(c *gin.Context) {
	var q requests.LeaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit harus antara 1 dan 25"})
		return
	}
	if q.Limit == 0 {
		q.Limit = 10
	}

	top, err := s.repo.Leaderboard(c.Request.Context(), q.Limit)
	if err != nil {
		serverError(c, "leaderboard", err)
		return
	}
	data := make([]gin.H, 0, len(top))
	for i, e := range top {
		data = append(data, gin.H{
			"rank":            i + 1,
			"donor":           e.DonorName,
			"total":           e.Total,
			"total_formatted": utils.FormatRupiah(e.Total),
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil", "data": data})
}

func (s *StatsController) GetRecent(c *gin.Context) {
	var q requests.RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit harus antara 1 dan 10"})
		return
	}
	if q.Limit == 0 {
		q.Limit = 5
	}

	recent, err := s.repo.RecentDonations(c.Request.Context(), q.Limit)
	if err != nil {
		serverError(c, "recent", err)
		return
	}
	data := make([]gin.H, 0, len(recent))
	for _, d := range recent {
		msg := d.Message
		if s.filter != nil {
			msg = s.filter.Censor(msg)
		}
		data = append(data, gin.H{
			"id":               d.ID,
			"donor":            d.DonorName,
			"amount":           d.Amount,
			"amount_formatted": utils.FormatRupiah(d.Amount),
			"message":          msg,
			"timestamp":        d.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil", "data": data})
}

func (s *StatsController) GetStats(c *gin.Context) {
	st, err := s.repo.TotalStats(c.Request.Context())
	if err != nil {
		serverError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil", "data": gin.H{
		"total_amount":       st.TotalAmount,
		"total_formatted":    utils.FormatRupiah(st.TotalAmount),
		"total_donors":       st.TotalDonors,
		"total_transactions": st.TotalTransactions,
	}})
}

func (s *StatsController) GetGoal(c *gin.Context) {
	p, ok, err := s.goals.Progress(c.Request.Context())
	if err != nil {
		serverError(c, "goal", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Belum ada donation goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berhasil", "data": p})
}

func serverError(c *gin.Context, what string, err error) {
	slog.Error("api query failed", "endpoint", what, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
}
