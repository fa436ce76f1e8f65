// Command kivi-inspect drives the scheduler and reconciler against the
// hosttest fake host and prints the resulting frame timeline: the clock
// value before each frame tick, then the full host mutation log. It exists for manual
// inspection of scheduling/diffing behavior, the way vected_gen and ciu let
// the teacher's developers inspect generated output from the command line.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gernest/kivi"
	"github.com/gernest/kivi/hosttest"
	"github.com/gernest/kivi/monitoring"
	"github.com/gernest/kivi/observability"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "kivi-inspect"
	app.Usage = "drives kivi's scheduler/reconciler against a fake host and prints the frame timeline"
	app.Commands = []cli.Command{
		tickCommand(),
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tickCommand() cli.Command {
	return cli.Command{
		Name:  "tick",
		Usage: "mount a counter component and run N frame ticks",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "frames", Value: 5},
		},
		Action: func(ctx *cli.Context) error {
			return runTicks(ctx.Int("frames"))
		},
	}
}

// counterState is the demo component's state: a render count that bumps
// itself dirty every frame until it reaches the target.
type counterState struct {
	count int
}

var counterDescriptor = &kivi.ComponentDescriptor{
	Name: "counter",
	Init: func(c *kivi.Component) {
		c.SetState(&counterState{})
		c.StartUpdateEachFrame()
	},
	Update: func(c *kivi.Component) *kivi.VNode {
		st := c.State().(*counterState)
		st.count++
		if st.count >= 5 {
			c.StopUpdateEachFrame()
		}
		label := "count: " + strconv.Itoa(st.count)
		return kivi.NewElement("div", nil, nil, nil, "", "", []*kivi.VNode{
			kivi.NewText(label),
		})
	},
}

func runTicks(frames int) error {
	host := hosttest.New()
	tick := &hosttest.TickSource{}
	micro := &hosttest.MicrotaskDriver{}
	macro := &hosttest.MacrotaskDriver{}
	reporter := observability.NewConsoleReporter()
	metrics := monitoring.NewPrometheusFrameMetrics(nil)

	rt := kivi.New(host, tick, micro, macro, reporter, kivi.DefaultConfig())
	rt.Scheduler.SetMetrics(metrics)
	rt.Scheduler.SetElapsedSampler(func() float64 { return 4 })

	c := rt.Mount(counterDescriptor, nil)
	fmt.Printf("mounted %s at depth %d\n", counterDescriptor.Name, c.Depth())

	for i := 0; i < frames && tick.Pending(); i++ {
		fmt.Printf("--- frame %d (clock %d) ---\n", i, rt.Scheduler.Clock())
		tick.Tick(float64(i) * 16)
		micro.Flush()
		macro.Flush()
	}

	fmt.Println("--- host mutation log ---")
	for _, line := range host.Log {
		fmt.Println(line)
	}
	return nil
}
