package main

import (
	"log"
	"time"

	"github.com/NARUBROWN/axon"
	"github.com/NARUBROWN/axon/pkg/boot"
)

func main() {
	app := axon.New()

	// 서비스 등록
	app.Service(
		NewCalculatorService,
		axon.Expose("Echo", (*CalculatorService).Echo),
		axon.Expose("Double", (*CalculatorService).Double),
		axon.Expose("Divide", (*CalculatorService).Divide),
		axon.Expose("SlowAdd", (*CalculatorService).SlowAdd),
	)

	app.Service(
		NewNotifierService,
		axon.Expose("Notify", (*NotifierService).Notify),
	)

	err := app.Run(boot.Options{
		Address:                ":8080",
		EnableGracefulShutdown: true,
		ShutdownTimeout:        5 * time.Second,
		WarmUp:                 true,
		Hub:                    &boot.HubOptions{Path: "/hub"},
	})
	if err != nil {
		log.Fatal(err)
	}
}
