package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func printTipList(title string, tips []string) {
	fmt.Printf("%s:\n", title)
	if len(tips) == 0 {
		fmt.Println("  -")
		return
	}
	for _, t := range tips {
		fmt.Printf("  * %s\n", t)
	}
}

func (a *app) tipsCmd() *cobra.Command {
	var regenerate, save bool
	cmd := &cobra.Command{
		Use:   "tips",
		Short: "AI tips for the latest workout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			tips, err := a.api.WorkoutTips(ctx, regenerate)
			if err != nil {
				return err
			}
			printHeader("Tips (%s)", tips.CreatedAt.Local().Format(time.DateTime))
			printTipList("warm-up", tips.Warmup)
			printTipList("workout", tips.Workout)
			printTipList("recovery", tips.Recovery)

			if !save {
				return nil
			}
			saved, err := a.api.SaveTips(ctx, *tips)
			if err != nil {
				return err
			}
			printOK("tips saved (#%d)", saved.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "ask the AI again instead of using the cached tips")
	cmd.Flags().BoolVar(&save, "save", false, "keep the tips in the tips history")

	history := &cobra.Command{
		Use:   "history",
		Short: "Saved tips, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			saved, err := a.api.TipsHistory(ctx)
			if err != nil {
				return err
			}
			for _, s := range saved {
				workout := "-"
				if s.WorkoutID != nil {
					workout = fmt.Sprintf("#%d", *s.WorkoutID)
				}
				printHeader("#%d  %s  workout %s", s.ID, s.CreatedAt.Local().Format(time.DateTime), workout)
				fmt.Println(string(s.Tips))
			}
			return nil
		},
	}
	cmd.AddCommand(history)
	return cmd
}
