package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/youthpulse/internal/assistant"
	"github.com/san-kum/youthpulse/internal/config"
	"github.com/san-kum/youthpulse/internal/counter"
	"github.com/san-kum/youthpulse/internal/dashboard"
	"github.com/san-kum/youthpulse/internal/dataset"
	"github.com/san-kum/youthpulse/internal/export"
	"github.com/san-kum/youthpulse/internal/logging"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	configFile string
	dataFile   string
	theme      string
	page       string
	preset     string
	frameRate  int
	logFile    string
	verbose    bool

	cfg *config.Config
	ds  *dataset.Dataset
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "youthpulse",
		Short:        "Ghana youth employment and sports dashboard",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         a.runDashboard,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&a.dataFile, "data", "", "dataset file overriding the built-in data (yaml)")
	pf.StringVar(&a.theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(dashboard.ThemeNames(), ", ")+")")
	pf.StringVar(&a.page, "page", config.DefaultPage, "page shown first")
	pf.StringVar(&a.preset, "preset", "", "count-up speed ("+strings.Join(config.ListPresets(), ", ")+")")
	pf.IntVar(&a.frameRate, "fps", config.DefaultFrameRate, "refresh rate of the dashboard")
	pf.StringVar(&a.logFile, "log", config.DefaultLogPath(), "log file, empty to disable")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	kpisCmd := &cobra.Command{
		Use:   "kpis",
		Short: "print the headline figures of every page",
		Args:  cobra.NoArgs,
		RunE:  a.listKPIs,
	}

	plotCmd := &cobra.Command{
		Use:       "plot [series]",
		Short:     "plot a monthly series",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: dataset.SeriesNames(),
		RunE:      a.plotSeries,
	}
	plotCmd.Flags().Int("height", 10, "chart height")
	plotCmd.Flags().Int("width", 72, "chart width")

	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "list regions sorted by a metric",
		Args:  cobra.NoArgs,
		RunE:  a.listRegions,
	}
	regionsCmd.Flags().String("sort", "youth_registered", "metric ("+strings.Join(dataset.RegionMetrics(), ", ")+")")
	regionsCmd.Flags().Int("top", 0, "show only the first n regions")

	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "ask the assistant a question, or list suggestions without one",
		RunE:  a.ask,
	}
	askCmd.Flags().Bool("plain", false, "print the reply without markdown rendering")

	countCmd := &cobra.Command{
		Use:   "count [target]",
		Short: "play the count-up animation on the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  a.count,
	}
	countCmd.Flags().Int("decimals", counter.DefaultDecimals, "decimal places")

	exportCmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "write the dataset as JSON and CSV files",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportDir,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "print the dataset as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export.WriteJSON(cmd.OutOrStdout(), a.ds)
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:       "export-csv [table]",
		Short:     "print one table as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: export.Tables(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return export.WriteCSV(cmd.OutOrStdout(), a.ds, args[0])
		},
	}

	pagesCmd := &cobra.Command{
		Use:   "pages",
		Short: "list dashboard pages",
		Args:  cobra.NoArgs,
		RunE:  a.listPages,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list count-up presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\n", name, time.Duration(p.DurationMs)*time.Millisecond)
			}
			return w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list colour themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range dashboard.ThemeNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	rootCmd.AddCommand(kpisCmd, plotCmd, regionsCmd, askCmd, countCmd,
		exportCmd, exportJSONCmd, exportCSVCmd, pagesCmd, presetsCmd, themesCmd)
	return rootCmd
}

// setup loads the config file, applies the flags that were set explicitly,
// then loads the dataset and opens the log.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = a.theme
	}
	if flags.Changed("page") {
		cfg.Page = a.page
	}
	if flags.Changed("fps") {
		cfg.FrameRate = a.frameRate
	}
	if flags.Changed("data") {
		cfg.DataFile = a.dataFile
	}
	if flags.Changed("log") {
		cfg.Log.File = a.logFile
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbose = a.verbose
	}
	if a.preset != "" {
		p := config.GetPreset(a.preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s", a.preset)
		}
		cfg.Animation = *p
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ds, err := loadDataset(cfg.DataFile)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.File, cfg.Log.Verbose)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	a.cfg, a.ds, a.log = cfg, ds, log
	a.log.Debug("command started",
		zap.String("command", cmd.Name()),
		zap.String("theme", cfg.Theme),
		zap.Int("fps", cfg.FrameRate),
		zap.Duration("count_up", cfg.CounterDuration()))
	return nil
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Load()
	}
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}

func (a *app) newAssistant() (*assistant.Assistant, error) {
	base, jitter := a.cfg.AssistantDelay()
	opts := []assistant.Option{
		assistant.WithDelay(base, jitter),
		assistant.WithLogger(a.log),
	}
	if a.cfg.Assistant.Seed != 0 {
		opts = append(opts, assistant.WithRand(rand.New(rand.NewSource(a.cfg.Assistant.Seed))))
	}
	return assistant.New(opts...)
}

func (a *app) runDashboard(cmd *cobra.Command, args []string) error {
	asst, err := a.newAssistant()
	if err != nil {
		return err
	}
	m, err := dashboard.New(a.cfg, a.ds, asst, a.log)
	if err != nil {
		return err
	}
	a.log.Info("dashboard started", zap.String("page", a.cfg.Page))
	return dashboard.Run(m)
}

func (a *app) listKPIs(cmd *cobra.Command, args []string) error {
	reg := dashboard.NewRegistry(a.ds)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tKPI\tVALUE\tTREND")
	for _, name := range reg.Names() {
		p, err := reg.Get(name)
		if err != nil {
			return err
		}
		for _, k := range p.KPIs {
			trend := "-"
			if k.HasTrend {
				trend = fmt.Sprintf("%+.1f%%", k.Trend)
			}
			fmt.Fprintf(w, "%s\t%s\t%s%s%s\t%s\n",
				name, k.Title, k.Prefix, counter.Format(k.Value, k.Decimals), k.Suffix, trend)
		}
	}
	return w.Flush()
}

func (a *app) plotSeries(cmd *cobra.Command, args []string) error {
	name := "registrations"
	if len(args) == 1 {
		name = args[0]
	}
	values, labels, err := a.ds.Series(name)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to plot")
	}
	height, _ := cmd.Flags().GetInt("height")
	width, _ := cmd.Flags().GetInt("width")

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%s, %s to %s", name, labels[0], labels[len(labels)-1])),
	)
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func (a *app) listRegions(cmd *cobra.Command, args []string) error {
	metric, _ := cmd.Flags().GetString("sort")
	top, _ := cmd.Flags().GetInt("top")
	regions, err := a.ds.TopRegions(metric, top)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tREGION\tYOUTH\tJOBS\tMATCH\tSKILL GAP\tUNEMP.\tATHLETES\tTOP SPORT")
	for _, r := range regions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t%.2f\t%.1f%%\t%s\t%s\n",
			r.Code,
			r.Name,
			counter.Format(r.YouthRegistered, 0),
			counter.Format(r.JobsMatched, 0),
			counter.Format(dataset.MatchRate(r), 2),
			r.SkillGapScore,
			r.UnemploymentRate,
			counter.Format(r.AthletesTracked, 0),
			r.TopSport,
		)
	}
	return w.Flush()
}

func (a *app) ask(cmd *cobra.Command, args []string) error {
	asst, err := a.newAssistant()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tQUESTION")
		for _, s := range asst.Suggestions() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Category, s.Question)
		}
		return w.Flush()
	}

	text, matched := asst.Answer(question)
	a.log.Info("question answered", zap.String("question", question), zap.Bool("matched", matched))

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		fmt.Fprintln(out, text)
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(dashboard.GetTheme(a.cfg.Theme).Markdown),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(text)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// count drives a counter from a wall-clock ticker at the configured frame
// rate and redraws the line in place.
func (a *app) count(cmd *cobra.Command, args []string) error {
	target, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", args[0], err)
	}
	decimals, _ := cmd.Flags().GetInt("decimals")
	out := cmd.OutOrStdout()

	frames := counter.NewFrameQueue()
	c := counter.New(frames,
		counter.WithDuration(a.cfg.CounterDuration()),
		counter.WithDecimals(decimals),
		counter.WithObserver(func(f counter.Frame) {
			fmt.Fprintf(out, "\r%s", f.Text)
		}),
	)
	c.Bind(target)

	ticker := time.NewTicker(a.cfg.FrameInterval())
	defer ticker.Stop()
	for frames.Pending() > 0 {
		select {
		case <-cmd.Context().Done():
			c.Cancel()
			fmt.Fprintln(out)
			return cmd.Context().Err()
		case now := <-ticker.C:
			frames.Flush(now)
		}
	}
	fmt.Fprintln(out)
	a.log.Debug("count finished", zap.Float64("target", target), zap.String("value", c.String()))
	return nil
}

func (a *app) exportDir(cmd *cobra.Command, args []string) error {
	written, err := export.Save(args[0], a.ds)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	a.log.Info("dataset exported", zap.String("dir", args[0]), zap.Int("files", len(written)))
	return nil
}

func (a *app) listPages(cmd *cobra.Command, args []string) error {
	reg := dashboard.NewRegistry(a.ds)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tPAGE\tTITLE\tKPIS")
	for i, name := range reg.Names() {
		p, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, name, p.Title, len(p.KPIs))
	}
	return w.Flush()
}
