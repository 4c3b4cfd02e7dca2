package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/minigames"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List crew jobs, their items and skill checks",
	Long:  `Shows each crew job with the ship item it carries and the skill check that powers it.`,
	Run:   runJobs,
}

func runJobs(cmd *cobra.Command, args []string) {
	fmt.Println("Crew jobs:")
	fmt.Println()
	fmt.Printf("  %-10s %-10s %s\n", "Job", "Item", "Skill check")
	fmt.Printf("  %-10s %-10s %s\n", "---", "----", "-----------")

	for _, job := range engine.Jobs() {
		check := "-"
		if g, err := minigames.ForJob(job); err == nil {
			check = g.Title()
		}
		fmt.Printf("  %-10s %-10s %s\n", job, engine.ItemForJob(job), check)
	}

	fmt.Println()
	fmt.Println("Pick a job with 'corecollapse play --job <name>' or key 1/2/3 in the lobby.")
}
