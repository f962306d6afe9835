package main

import (
	"fmt"
	"io/ioutil"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/eliasantony/food-fellas/bleve"
	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/log"
)

var (
	// flags
	env string

	// logger
	logger log.Logger

	// configuration
	cfg Configuration
)

type Configuration struct {
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Recipes string `toml:"recipes"`
		Users   string `toml:"users"`
	} `toml:"bleve"`
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
}

var RootCmd = cobra.Command{
	Use:   "foodfellas",
	Short: "FoodFellas maintenance tool",
	Long:  "FoodFellas maintenance tool",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.New(env)

		cfgData, err := ioutil.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			logger.Fatal("error reading configuration:", err)
		}
		if err := toml.Unmarshal(cfgData, &cfg); err != nil {
			logger.Fatal("error unmarshalling configuration:", err)
		}
	},
}

func createDriver() (*bolt.Driver, func(), error) {
	driver := &bolt.Driver{}
	if err := driver.Open(cfg.Bolt.Store); err != nil {
		return nil, func() {}, errors.New("error opening db", errors.WithCause(err))
	}
	return driver, func() { driver.Close() }, nil
}

func createIndexes() (*bleve.RecipeIndex, *bleve.UserIndex, func(), error) {
	recipeIndex, err := bleve.NewRecipeIndex(cfg.Bleve.Recipes)
	if err != nil {
		return nil, nil, func() {}, errors.New("error opening recipe index", errors.WithCause(err))
	}

	userIndex, err := bleve.NewUserIndex(cfg.Bleve.Users)
	if err != nil {
		recipeIndex.Close()
		return nil, nil, func() {}, errors.New("error opening user index", errors.WithCause(err))
	}

	return recipeIndex, userIndex, func() {
		recipeIndex.Close()
		userIndex.Close()
	}, nil
}
