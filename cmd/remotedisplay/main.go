// The remote display binary: the second device on the serial link. It only
// ever reacts to protocol commands and answers with acknowledgement lines.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keyfall/keyfall/internal/config"
	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/display"
	"github.com/keyfall/keyfall/internal/matrix"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	config.Parse()

	led, err := matrix.NewConsole()
	if nil != err {
		return err
	}
	defer led.Close()

	client, err := device.Open(*config.SerialDevice, *config.Baud)
	if nil != err {
		return err
	}
	defer client.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	d := display.New(led, client.Send, time.Now())
	for {
		select {
		case <-quit:
			led.Clear()
			if err := led.Show(); nil != err {
				log.Println("unable to blank panel:", err)
			}
			return nil
		default:
		}

		now := time.Now()
		deadline := now.Add(*config.FramePeriod)

		for _, cmd := range client.Poll() {
			d.Apply(cmd, now)
		}
		d.Update(now)

		time.Sleep(time.Until(deadline))
	}
}
