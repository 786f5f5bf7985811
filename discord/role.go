package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/bwmarrin/discordgo"
)

// GuildAPI is the part of *discordgo.Session used to manage the role.
type GuildAPI interface {
	GuildMembers(guildID, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

const memberPageSize = 1000

// RoleUpdater keeps the top-donor role on the member matching the all-time
// top donor's name.
type RoleUpdater struct {
	api     GuildAPI
	guildID string
	roleID  string
}

func NewRoleUpdater(api GuildAPI, guildID, roleID string) *RoleUpdater {
	return &RoleUpdater{api: api, guildID: guildID, roleID: roleID}
}

func (r *RoleUpdater) UpdateTopDonor(ctx context.Context, top models.LeaderboardEntry) error {
	if r.guildID == "" || r.roleID == "" {
		return nil
	}

	members, err := r.members(ctx)
	if err != nil {
		return err
	}

	var winner *discordgo.Member
	for _, m := range members {
		if matchesDonor(m, top.DonorName) {
			winner = m
			break
		}
	}

	for _, m := range members {
		if m == winner || !hasRole(m, r.roleID) {
			continue
		}
		if err := r.api.GuildMemberRoleRemove(r.guildID, m.User.ID, r.roleID, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("remove role from %s: %w", m.User.ID, err)
		}
	}
	if winner != nil && !hasRole(winner, r.roleID) {
		if err := r.api.GuildMemberRoleAdd(r.guildID, winner.User.ID, r.roleID, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("add role to %s: %w", winner.User.ID, err)
		}
	}

	slog.Info("🏆 Top donatur saat ini", "donor", top.DonorName, "total", utils.FormatRupiah(top.Total), "member_found", winner != nil)
	return nil
}

func (r *RoleUpdater) members(ctx context.Context) ([]*discordgo.Member, error) {
	var (
		all   []*discordgo.Member
		after string
	)
	for {
		page, err := r.api.GuildMembers(r.guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list guild members: %w", err)
		}
		cursor := ""
		for _, m := range page {
			if m.User != nil {
				all = append(all, m)
				cursor = m.User.ID
			}
		}
		if len(page) < memberPageSize || cursor == "" {
			return all, nil
		}
		after = cursor
	}
}

func matchesDonor(m *discordgo.Member, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, candidate := range []string{m.User.Username, m.User.GlobalName, m.Nick} {
		if candidate != "" && strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}

func hasRole(m *discordgo.Member, roleID string) bool {
	for _, id := range m.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
