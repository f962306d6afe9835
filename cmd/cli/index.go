package main

import (
	"github.com/spf13/cobra"
)

func init() {
	IndexCmd.AddCommand(&IndexCreateCmd)
	RootCmd.AddCommand(&IndexCmd)
}

var IndexCmd = cobra.Command{
	Use:   "index",
	Short: "Manage the search indexes",
	Long:  "Manage the search indexes",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var IndexCreateCmd = cobra.Command{
	Use:   "create",
	Short: "Create the recipe and user indexes",
	Long:  "Create the recipe and user indexes if they do not exist yet",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, closeIndexes, err := createIndexes()
		if err != nil {
			logger.Fatal(err)
		}
		closeIndexes()

		logger.Print("indexes ready at ", cfg.Bleve.Recipes, " and ", cfg.Bleve.Users)
	},
}
