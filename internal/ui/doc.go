// Package ui is the cabinet's terminal front-end and the styled output of
// the command-line tools.
//
// # Front-end
//
// A Driver ticks the navigation controller at a fixed rate in its own
// goroutine and publishes a Frame after every tick. Frontend hosts the
// driver inside a Bubble Tea program: the Model renders frames with
// lipgloss and forwards key presses to the input sampler. The model never
// touches the controller, so a launch blocking the driver leaves the
// program responsive.
//
// Frontend also implements launcher.Suspender. Before an external program
// starts the terminal is released, and it is restored when the program
// exits.
//
// Without a terminal, RunHeadless drives the controller alone and input
// comes from remote clients.
//
// # Command output
//
// Printer, Header, Checklist and Result render the boxes that "marquee
// check" and "marquee init" print:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader(ui.NewHeader("Configuration check", "marquee check", params))
//	p.PrintChecklist(checks)
//	p.PrintResult(ui.NewSuccessResult("Ready", nil))
package ui
