package main

import (
	"commodityforecast/api"
	"commodityforecast/cmd"
	"commodityforecast/internal/domain"
	l2_service "commodityforecast/internal/service/l2"
	l3_service "commodityforecast/internal/service/l3"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

type volumeTotalCsvRow struct {
	Commodity            string  `csv:"Commodity"`
	TotalPredictedVolume float64 `csv:"Total_Predicted_Volume"`
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "forecast",
		Short:         "Forecast agricultural commodity prices and traded volumes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default picked by FORECAST_ENV)")

	// the dataset is only loaded once a subcommand actually runs
	withHandler := func(run func(c *cobra.Command, h *api.ApiHandler) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, _ []string) error {
			h, err := cmd.InitializeDependencies(cfgFile)
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(h)
			return run(c, h)
		}
	}

	root.AddCommand(
		serveCmd(&cfgFile, withHandler),
		predictCmd(withHandler),
		volumesCmd(withHandler),
		commoditiesCmd(withHandler),
	)
	return root
}

type handlerRunner func(run func(c *cobra.Command, h *api.ApiHandler) error) func(*cobra.Command, []string) error

func serveCmd(cfgFile *string, withHandler handlerRunner) *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP api",
		Args:  cobra.NoArgs,
		RunE: withHandler(func(c *cobra.Command, h *api.ApiHandler) error {
			if port == 0 {
				p, err := cmd.Port(*cfgFile)
				if err != nil {
					return err
				}
				port = p
			}
			return h.StartApi(port)
		}),
	}
	c.Flags().IntVar(&port, "port", 0, "port to listen on (default from config)")
	return c
}

func predictCmd(withHandler handlerRunner) *cobra.Command {
	var (
		commodity string
		target    string
		start     string
		days      int
		chartPath string
	)
	c := &cobra.Command{
		Use:   "predict",
		Short: "Forecast one commodity and print the table as csv",
		Args:  cobra.NoArgs,
		RunE: withHandler(func(c *cobra.Command, h *api.ApiHandler) error {
			result, err := h.ForecastService.Forecast(c.Context(), l2_service.ForecastInput{
				Commodity:          commodity,
				TargetVariable:     target,
				StartDate:          start,
				ForecastPeriodDays: days,
			})
			if err != nil {
				return err
			}

			out, err := api.ForecastResultToCsv(*result)
			if err != nil {
				return err
			}
			if _, err := c.OutOrStdout().Write(out); err != nil {
				return err
			}

			if chartPath != "" {
				img, err := h.ChartRenderer.RenderForecast(*result)
				if err != nil {
					return err
				}
				return writeChart(chartPath, img)
			}
			return nil
		}),
	}
	c.Flags().StringVar(&commodity, "commodity", "", "commodity name, matched exactly")
	c.Flags().StringVar(&target, "target", string(domain.TargetVariable_Price), "price or volume")
	c.Flags().StringVar(&start, "start", "", "first forecast date, YYYY-MM-DD")
	c.Flags().IntVar(&days, "days", 30, "number of days to forecast")
	c.Flags().StringVar(&chartPath, "chart", "", "also write a png chart to this path")
	_ = c.MarkFlagRequired("commodity")
	_ = c.MarkFlagRequired("start")
	return c
}

func volumesCmd(withHandler handlerRunner) *cobra.Command {
	var (
		start     string
		days      int
		chartPath string
	)
	c := &cobra.Command{
		Use:   "volumes",
		Short: "Print total predicted volume per commodity",
		Args:  cobra.NoArgs,
		RunE: withHandler(func(c *cobra.Command, h *api.ApiHandler) error {
			result, err := h.VolumeService.TotalVolumes(c.Context(), l3_service.VolumeTotalsInput{
				StartDate:          start,
				ForecastPeriodDays: days,
			})
			if err != nil {
				return err
			}

			rows := make([]volumeTotalCsvRow, len(result.Totals))
			for i, t := range result.Totals {
				rows[i] = volumeTotalCsvRow(t)
			}
			if err := gocsv.Marshal(&rows, c.OutOrStdout()); err != nil {
				return err
			}
			for _, s := range result.Skipped {
				fmt.Fprintf(c.ErrOrStderr(), "skipped %s: %s\n", s.Commodity, s.Reason)
			}

			if chartPath != "" {
				img, err := h.ChartRenderer.RenderVolumeTotals(result.Totals)
				if err != nil {
					return err
				}
				return writeChart(chartPath, img)
			}
			return nil
		}),
	}
	c.Flags().StringVar(&start, "start", "", "reference date, YYYY-MM-DD")
	c.Flags().IntVar(&days, "days", 30, "number of days to forecast")
	c.Flags().StringVar(&chartPath, "chart", "", "also write a png bar chart to this path")
	return c
}

func commoditiesCmd(withHandler handlerRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "commodities",
		Short: "List the commodities in the dataset",
		Args:  cobra.NoArgs,
		RunE: withHandler(func(c *cobra.Command, h *api.ApiHandler) error {
			for _, name := range h.HistoricalRecordRepository.ListCommodities() {
				fmt.Fprintln(c.OutOrStdout(), name)
			}
			return nil
		}),
	}
}

func writeChart(path string, img []byte) error {
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
