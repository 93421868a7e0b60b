package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/internal/lotto_service/history"
	"lotto_service/internal/lotto_service/service"
	"lotto_service/pkg/httpClient"
	"lotto_service/pkg/logger"
	"lotto_service/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions 所有子命令共用的參數
type rootOptions struct {
	logLevel string
	log      *zap.Logger
}

// fileOptions 讀取歷史檔案的參數
type fileOptions struct {
	path        string
	sheet       string
	headerRows  int
	roundColumn int
}

func (o *fileOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.path, "file", "1st_lotto_bonus.xlsx", "history spreadsheet (.xlsx or .csv)")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "sheet name, first sheet when empty")
	cmd.Flags().IntVar(&o.headerRows, "header-rows", history.DefaultHeaderRows, "rows to skip at the top of the file")
	cmd.Flags().IntVar(&o.roundColumn, "round-column", -1, "column holding the round number, -1 when absent")
}

// newService 以檔案來源建立一次性的推薦服務
func (o *fileOptions) newService(log *zap.Logger, opts ...service.Option) *service.LottoService {
	source := history.NewFileSource(o.path, o.sheet, o.headerRows, o.roundColumn)
	store := history.NewStore(history.NewLoader(log, source), log)
	return service.NewLottoService(store, log, opts...)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lotto_cli",
		Short:         "Weighted lotto 6/45 combination recommender",
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       utils.VersionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewZapLogger(logger.Config{Level: opts.logLevel, Format: "console"})
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCmd(opts),
		newAnalyzeCmd(opts),
		newFetchCmd(opts),
	)
	return root
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		file        fileOptions
		games       int
		fixed       []int
		seed        int64
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate weighted combinations that never repeat a past first prize",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := file.newService(root.log,
				service.WithSeed(seed),
				service.WithMaxAttempts(maxAttempts))

			rec, err := svc.Recommend(cmd.Context(), service.RecommendRequest{GameCount: games, FixedNumbers: fixed})
			if err != nil {
				return err
			}
			printRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	file.register(cmd)
	cmd.Flags().IntVar(&games, "games", 5, "number of games (1-10)")
	cmd.Flags().IntSliceVar(&fixed, "fixed", nil, "fixed numbers included in every game (up to 5)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 uses the clock")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", analysis.MaxAttempts, "attempt budget for the whole batch")
	return cmd
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var file fileOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the ranked pool, dropped numbers and sampling weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := file.newService(root.log).Analysis(cmd.Context())
			if err != nil {
				return err
			}
			printAnalysis(cmd.OutOrStdout(), report)
			return nil
		},
	}
	file.register(cmd)
	return cmd
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	var (
		from      int
		maxRounds int
		baseURL   string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch published draws starting at a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpClient.NewClient(
				httpClient.WithTimeout(timeout),
				httpClient.WithServiceName("lotto_cli"),
				httpClient.WithUserAgent("lotto_cli/"+utils.Version),
			)
			refresher := history.NewRefresher(
				history.NewHTTPDrawFetcher(client, baseURL, root.log),
				root.log,
				history.WithMaxRounds(maxRounds),
				history.WithFetchTimeout(timeout),
			)

			report := refresher.Refresh(cmd.Context(), from)
			printRefresh(cmd.OutOrStdout(), report)
			return report.Err
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "first round to fetch")
	cmd.Flags().IntVar(&maxRounds, "max", history.DefaultMaxRounds, "maximum rounds per call")
	cmd.Flags().StringVar(&baseURL, "base-url", "https://www.dhlottery.co.kr", "draw result service")
	cmd.Flags().DurationVar(&timeout, "timeout", history.DefaultFetchTimeout, "total time limit")
	return cmd
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%2d", v)
	}
	return strings.Join(parts, " ")
}

func printRecommendation(w io.Writer, rec *service.Recommendation) {
	for i, g := range rec.Games {
		fmt.Fprintf(w, "%c  %s\n", 'A'+i, joinInts(g.Numbers.Numbers()))
	}
	if len(rec.FixedNumbers) > 0 {
		fmt.Fprintf(w, "fixed:    %s\n", joinInts(rec.FixedNumbers))
	}
	fmt.Fprintf(w, "dropped:  %s\n", joinInts(rec.Dropped))
	fmt.Fprintf(w, "history:  %d first-prize combinations\n", rec.HistoryCount)
	if rec.Exhausted {
		fmt.Fprintf(w, "attempt budget exhausted after %d attempts: %d of %d games\n", rec.Attempts, len(rec.Games), rec.Requested)
	}
}

func printAnalysis(w io.Writer, report *service.AnalysisReport) {
	fmt.Fprintf(w, "draws: %d  max count: %d\n", report.DrawCount, report.MaxCount)
	fmt.Fprintln(w, "rank  number  count  weight")
	for i, n := range report.Survivors {
		fmt.Fprintf(w, "%4d  %6d  %5d  %6d\n", i+1, n, report.Frequencies[n], report.Weights[n])
	}
	fmt.Fprintf(w, "dropped: %s\n", joinInts(report.Dropped))
}

func printRefresh(w io.Writer, report history.RefreshReport) {
	for _, d := range report.Draws {
		fmt.Fprintf(w, "%5d  %s  %s\n", d.Round, d.Date, joinInts(d.Numbers))
	}
	fmt.Fprintf(w, "fetched %d rounds from %d, stopped at %d\n", report.Fetched, report.From, report.StoppedAt)
	if report.Error != "" {
		fmt.Fprintf(w, "error: %s\n", report.Error)
	}
}
