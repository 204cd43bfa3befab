package cmd

func RegisterBaseCommands() {
	// Schema
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(statusCmd)

	// Data
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(exportCmd)

	// Validity
	rootCmd.AddCommand(validityCmd)
	rootCmd.AddCommand(invalidateCmd)
	rootCmd.AddCommand(restoreCmd)

	rootCmd.AddCommand(consoleCmd)
}
