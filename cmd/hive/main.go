// Copyright (c) 2025 The hive developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/hivestake/hive/api"
	"github.com/hivestake/hive/genesis"
	"github.com/hivestake/hive/log"
	"github.com/hivestake/hive/staking"
	"github.com/hivestake/hive/staking/gateway"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Hive",
		Usage:     "Time-weighted staking ledger",
		Copyright: "2025 The hive developers",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "run in dev mode with an in-memory ledger and instant transfers",
				Flags: []cli.Flag{
					dataDirFlag,
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					pprofFlag,
					persistFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)
	return runLedger(ctx, gene)
}

func soloAction(ctx *cli.Context) error {
	initLogger(ctx)

	gene := genesis.NewDevnet()
	if ctx.IsSet(genesisFlag.Name) {
		gene = selectGenesis(ctx)
	}
	return runLedger(ctx, gene)
}

func runLedger(ctx *cli.Context, gene *genesis.Genesis) error {
	defer func() { logger.Info("exited") }()

	mainDB, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	svc := staking.New(mainDB, gateway.NewSolo(), staking.Config{
		Owner:         gene.Owner,
		FundingSource: gene.FundingSource,
		LockupPeriod:  gene.LockupPeriod,
	})
	initialized, err := svc.Initialized()
	if err != nil {
		return err
	}
	if !initialized {
		if err := svc.Initialize(gene.OpeningBalance); err != nil {
			return err
		}
	}

	metricsSrv := startMetricsServer(ctx)
	if metricsSrv != nil {
		defer func() { logger.Info("stopping metrics server..."); metricsSrv.Shutdown(context.Background()) }()
	}

	handler := api.New(svc, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiSrv, apiURL := startAPIServer(ctx, handler)
	defer func() { logger.Info("stopping API server..."); apiSrv.Shutdown(context.Background()) }()

	printStartupMessage(gene, apiURL)

	<-handleExitSignal().Done()
	return nil
}

func printStartupMessage(gene *genesis.Genesis, apiURL string) {
	fmt.Printf(`Starting %v
    Version     %v
    Owner       %v
    Source      %v
    Pool        %v
    Lockup      %vs
    API portal  %v
`,
		"Hive",
		fullVersion(),
		gene.Owner,
		gene.FundingSource,
		gene.OpeningBalance,
		gene.LockupPeriod,
		apiURL,
	)
}
