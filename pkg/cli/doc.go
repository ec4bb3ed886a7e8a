/*
Package cli provides command-line helpers shared by the mmpp commands.

Output Formatting:

Commands that report results support text and JSON output:

	format, err := cli.ParseOutputFormat(flagValue)
	formatter := cli.NewFormatter(format)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Errors and exit codes:

Commands return errors; main maps them to exit codes with ExitCode. An
ExitError with a nil Err ends the process quietly with its code.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
