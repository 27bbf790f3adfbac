// Command demandwise forecasts monthly product demand with ARIMA(2,1,1).
//
//	demandwise drivers --sales 100,... --marketing-cost 50,... --price 20 --steps 6
//	demandwise history --product widget --demand-file history.csv --steps 6
//	demandwise run --file run.yaml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
