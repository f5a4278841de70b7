// Package launcher runs selected items as external programs.
//
// Each item names a launcher (or inherits its collection's). A launcher is
// a command and argument list whose entries are Go text templates over
// Params:
//
//	launch:
//	  launchers:
//	    mame:
//	      command: mame
//	      args: ["-rompath", "/roms", "{{.File}}"]
//	      reboot_exit_code: 42
//
// # Run-time caps
//
// launch.timeout kills user launches and reports a TimeoutError.
// attract.launch_run_time ends attract-mode launches; reaching it is a
// normal return. Both are enforced with a context deadline.
//
// # Reboot
//
// A program exiting with its launcher's reboot_exit_code makes Run return
// reboot=true. The navigation controller then quits so the host can
// restart the front-end.
//
// # Terminal hand-off
//
// When a Suspender is set, the terminal UI is released before the program
// starts and restored after it exits, and the program inherits stdin.
//
// # Statistics
//
// Every launch that started is recorded with WithStats, attract-mode
// launches included. A launch cut off by the attract cap records the time
// it ran.
package launcher
