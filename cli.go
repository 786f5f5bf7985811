package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/config"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/filter"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/goals"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/milestone"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/store"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/thankyou"
	"github.com/IsmetMaulanaAzhari/Tes-Saweria/utils"

	"github.com/spf13/cobra"
)

// withStore runs fn against the configured database.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, st *store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)
	return fn(cmd.Context(), cfg, st)
}

func statsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Tampilkan total donasi dan leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				totals, err := st.TotalStats(ctx)
				if err != nil {
					return err
				}
				amounts, err := st.AmountStats(ctx)
				if err != nil {
					return err
				}
				top, err := st.Leaderboard(ctx, limit)
				if err != nil {
					return err
				}
				progress, hasGoal, err := goals.NewTracker(st).Progress(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total donasi : %s\n", utils.FormatRupiah(totals.TotalAmount))
				fmt.Fprintf(out, "Donatur      : %s\n", utils.FormatNumber(totals.TotalDonors))
				fmt.Fprintf(out, "Transaksi    : %s\n", utils.FormatNumber(totals.TotalTransactions))
				if totals.TotalTransactions > 0 {
					fmt.Fprintf(out, "Rata-rata    : %s (max %s, min %s)\n",
						utils.FormatRupiah(int64(amounts.Average)), utils.FormatRupiah(amounts.Max), utils.FormatRupiah(amounts.Min))
				}
				if hasGoal {
					fmt.Fprintf(out, "Goal         : %s %s / %s (%.1f%%)\n",
						progress.Description, utils.FormatRupiah(progress.CurrentTotal), utils.FormatRupiah(progress.Target), progress.Percentage)
				}
				if len(top) == 0 {
					return nil
				}

				fmt.Fprintln(out)
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "#\tDONATUR\tTOTAL")
				for i, e := range top {
					fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, e.DonorName, utils.FormatRupiah(e.Total))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "jumlah donatur di leaderboard")
	return cmd
}

func simulateCmd() *cobra.Command {
	var (
		name    string
		amount  int64
		message string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Format donasi percobaan tanpa menyimpan atau mengirim ke chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg config.Config, st *store.Store) error {
				f := filter.New(st)
				if err := f.Load(ctx); err != nil {
					return err
				}
				d, media := donation.TestPayload(name, amount, message).Normalize()
				censored := f.Censor(d.Message)
				tier, hasTier := milestone.Classify(milestone.DefaultTiers, d.Amount)
				thanksTier, thanks := thankyou.NewService(st, cfg.Location()).Message(ctx, thankyou.Data{
					Name:    d.DonorName,
					Amount:  d.Amount,
					Message: censored,
				}, false)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Donatur   : %s\n", d.DonorName)
				fmt.Fprintf(out, "Jumlah    : %s\n", utils.FormatRupiah(d.Amount))
				fmt.Fprintf(out, "Pesan     : %s\n", censored)
				if censored != d.Message {
					fmt.Fprintf(out, "Difilter  : %s\n", strings.Join(f.Matches(d.Message), ", "))
				}
				if media != "" {
					fmt.Fprintf(out, "Media     : %s\n", media)
				}
				if hasTier {
					fmt.Fprintf(out, "Milestone : %s\n", tier.Label())
				}
				fmt.Fprintf(out, "Terima kasih (%s): %s\n", thanksTier, thanks)
				fmt.Fprintf(out, "TTS       : %s\n", donation.SpeechText(d.DonorName, d.Amount, censored))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "Test Donatur", "nama donatur")
	cmd.Flags().Int64Var(&amount, "amount", 10000, "jumlah donasi")
	cmd.Flags().StringVar(&message, "message", "Ini adalah test donasi!", "pesan donasi")
	return cmd
}

func blacklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Kelola kata terlarang",
	}

	load := func(ctx context.Context, st *store.Store) (*filter.Filter, error) {
		f := filter.New(st)
		return f, f.Load(ctx)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <kata>...",
		Short: "Tambah kata terlarang",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				f, err := load(ctx, st)
				if err != nil {
					return err
				}
				for _, w := range args {
					term, added, err := f.AddTerm(ctx, w, "cli")
					switch {
					case err != nil:
						fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %v\n", w, err)
					case added:
						fmt.Fprintf(cmd.OutOrStdout(), "✅ %s ditambahkan\n", term)
					default:
						fmt.Fprintf(cmd.OutOrStdout(), "⚠️ %s sudah ada\n", term)
					}
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <kata>...",
		Short: "Hapus kata terlarang",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				f, err := load(ctx, st)
				if err != nil {
					return err
				}
				for _, w := range args {
					removed, err := f.RemoveTerm(ctx, w)
					switch {
					case err != nil:
						fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %v\n", w, err)
					case removed:
						fmt.Fprintf(cmd.OutOrStdout(), "✅ %s dihapus\n", w)
					default:
						fmt.Fprintf(cmd.OutOrStdout(), "⚠️ %s tidak ada di blacklist\n", w)
					}
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Daftar kata terlarang",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				f, err := load(ctx, st)
				if err != nil {
					return err
				}
				terms := f.Terms()
				fmt.Fprintf(cmd.OutOrStdout(), "🚫 %d kata terlarang\n", len(terms))
				for _, t := range terms {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			})
		},
	})
	return cmd
}
