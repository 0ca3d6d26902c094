package main

import (
	"time"

	"github.com/macroview/creditgap/internal/fetcher"
	"github.com/macroview/creditgap/pkg/bis"
)

// initBIS wires the HTTP fetcher, group registry, and BIS client from config.
func initBIS() (*bis.Client, *bis.Registry, error) {
	groups, err := bis.LoadGroups()
	if err != nil {
		return nil, nil, err
	}

	hf := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.BIS.UserAgent,
		Timeout:    time.Duration(cfg.BIS.TimeoutSecs) * time.Second,
		MaxRetries: cfg.BIS.MaxRetries,
	})

	return bis.NewClient(hf, cfg.BIS.BaseURL), groups, nil
}
