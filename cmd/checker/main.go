package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"aave_portfolio/internal/app/service"
	"aave_portfolio/internal/client"
	"aave_portfolio/internal/config"
	"aave_portfolio/internal/domain/entity"
	"aave_portfolio/internal/infrastructure/networkdefinition"
	"aave_portfolio/internal/pkg/metrics"
	"aave_portfolio/internal/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagNetwork string
	flagAddress string
	flagScan    bool
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "checker",
		Short: "One-shot Aave V3 portfolio check for a wallet address",
		RunE:  runChecker,
	}

	rootCmd.Flags().StringVar(&flagNetwork, "network", "ethereum", "Network name or identifier (see 'checker networks')")
	rootCmd.Flags().StringVar(&flagAddress, "address", "", "EVM wallet address (0x...)")
	rootCmd.Flags().BoolVar(&flagScan, "scan", false, "Scan the address across all supported networks")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("address")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "networks",
		Short: "List supported networks",
		Run: func(cmd *cobra.Command, args []string) {
			provider := networkdefinition.NewStaticProvider(zap.NewNop())
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tIDENTIFIER\tCHAIN ID")
			for _, def := range provider.GetAllNetworkDefinitions() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", def.Name, def.Identifier, def.ChainID)
			}
			w.Flush()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChecker(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	if flagVerbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	defer logger.Sync()

	cfg := config.Default()
	if path := utils.GetEnv("CONFIG_PATH", ""); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	metrics.MustRegisterMetrics()

	provider := networkdefinition.NewStaticProvider(logger)
	fetcher := client.NewAaveClient(cfg.AaveAPI, logger)
	portfolioSvc := service.NewPortfolioService(fetcher, provider, cfg, logger)

	if flagScan {
		portfolios, serviceErrors := portfolioSvc.ScanAllNetworks(cmd.Context(), flagAddress)
		for i := range portfolios {
			printSnapshot(&portfolios[i])
			fmt.Println()
		}
		if len(portfolios) == 0 && len(serviceErrors) == 0 {
			fmt.Printf("No positions found for %s on any supported network.\n", entity.ShortenAddress(flagAddress))
		}
		for _, se := range serviceErrors {
			fmt.Fprintf(os.Stderr, "warning: %s\n", se.Error())
		}
		if len(serviceErrors) == 1 && serviceErrors[0].Kind == entity.ErrKindInvalidAddress {
			return fmt.Errorf("%s", serviceErrors[0].Message)
		}
		return nil
	}

	snapshot, err := portfolioSvc.GetPortfolio(cmd.Context(), flagNetwork, flagAddress)
	if err != nil {
		var pe *entity.PortfolioError
		if errors.As(err, &pe) {
			if pe.Kind == entity.ErrKindNoPositions {
				fmt.Println(pe.Message)
				return nil
			}
			return fmt.Errorf("%s", pe.Message)
		}
		return err
	}

	printSnapshot(snapshot)
	return nil
}

func printSnapshot(s *entity.PortfolioSnapshot) {
	fmt.Printf("%s — %s\n", s.Network.Name, entity.ShortenAddress(s.Address))
	fmt.Printf("  Net worth:     %s\n", utils.FormatUSD(s.NetWorthUSD))
	fmt.Printf("  Collateral:    %s\n", utils.FormatUSD(s.TotalCollateralUSD))
	fmt.Printf("  Debt:          %s\n", utils.FormatUSD(s.TotalDebtUSD))
	fmt.Printf("  Utilization:   %.1f%%\n", s.Utilization*100)
	fmt.Printf("  Health factor: %s (%s)\n", s.Health.HealthFactor.String(), s.Health.HealthBucket)
	fmt.Printf("  Net APY:       %s\n", formatMetricPercent(s.NetAPY))

	if len(s.Supplies) > 0 {
		fmt.Println("  Supplies:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "    ASSET\tVALUE (USD)\tAPY\tCOLLATERAL\tFLAGS")
		for _, sup := range s.Supplies {
			fmt.Fprintf(w, "    %s\t%s\t%.2f%%\t%s\t%s\n",
				sup.Symbol, utils.FormatUSD(sup.ValueUSD), sup.APYPercent,
				yesNo(sup.IsCollateral), incompleteFlag(sup.Incomplete))
		}
		w.Flush()
	}
	if len(s.Borrows) > 0 {
		fmt.Println("  Borrows:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "    ASSET\tDEBT (USD)\tAPY\tMODE\tFLAGS")
		for _, bor := range s.Borrows {
			mode := bor.RateMode
			if mode == "" {
				mode = "-"
			}
			fmt.Fprintf(w, "    %s\t%s\t%.2f%%\t%s\t%s\n",
				bor.Symbol, utils.FormatUSD(bor.ValueUSD), bor.APYPercent,
				mode, incompleteFlag(bor.Incomplete))
		}
		w.Flush()
	}
	if s.IncompleteRecords > 0 {
		fmt.Printf("  Note: %d record(s) had incomplete data and contribute $0 to totals.\n", s.IncompleteRecords)
	}
}

func formatMetricPercent(m entity.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	if m.Infinite {
		return "∞"
	}
	return strings.TrimSpace(fmt.Sprintf("%.2f%%", m.Value))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func incompleteFlag(b bool) string {
	if b {
		return "incomplete"
	}
	return "-"
}
