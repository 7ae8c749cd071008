package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/okian/gradebook/internal/app"
)

// newFlags returns a subcommand flag set that reports to out.
func newFlags(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parse(fs *flag.FlagSet, args []string, required map[string]*string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	for name, v := range required {
		if strings.TrimSpace(*v) == "" {
			fmt.Fprintf(fs.Output(), "%s: -%s is required\n", fs.Name(), name)
			return fmt.Errorf("%w: -%s is required", errUsage, name)
		}
	}
	return nil
}

func runToken(ctx context.Context, e *env, _ []string) error {
	tok, err := app.TokenSource(e.cfg).Token(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Your api_token is: %s\n", tok)
	return nil
}

func runGet(ctx context.Context, e *env, args []string) error {
	fs := newFlags("get", e.errOut)
	username := fs.String("username", "", "user to look up")
	course := fs.String("course", "", "course code")
	if err := parse(fs, args, map[string]*string{"username": username, "course": course}); err != nil {
		return err
	}

	g, err := e.uc.GetGrade.Execute(ctx, *username, *course)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Grade: %d\n", g.Grade)
	return nil
}

func runGrades(ctx context.Context, e *env, args []string) error {
	fs := newFlags("grades", e.errOut)
	username := fs.String("username", "", "user to look up")
	if err := parse(fs, args, map[string]*string{"username": username}); err != nil {
		return err
	}

	grades, err := e.uc.GetGrades.Execute(ctx, *username)
	if err != nil {
		return err
	}
	if len(grades) == 0 {
		fmt.Fprintln(e.out, "No grades recorded.")
		return nil
	}
	for _, g := range grades {
		fmt.Fprintf(e.out, "%s: %d\n", g.Course, g.Grade)
	}
	return nil
}

func runLog(ctx context.Context, e *env, args []string) error {
	fs := newFlags("log", e.errOut)
	course := fs.String("course", "", "course code")
	grade := fs.Int("grade", 0, "grade to record")
	if err := parse(fs, args, map[string]*string{"course": course}); err != nil {
		return err
	}
	gradeSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "grade" {
			gradeSet = true
		}
	})
	if !gradeSet {
		fmt.Fprintln(e.errOut, "log: -grade is required")
		return fmt.Errorf("%w: -grade is required", errUsage)
	}

	if err := e.uc.LogGrade.Execute(ctx, *course, *grade); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Grade Added successfully.")
	return nil
}

func runFormTeam(ctx context.Context, e *env, args []string) error {
	fs := newFlags("form-team", e.errOut)
	name := fs.String("name", "", "team name, must be unique")
	if err := parse(fs, args, map[string]*string{"name": name}); err != nil {
		return err
	}

	team, err := e.uc.FormTeam.Execute(ctx, *name)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Team formed!")
	fmt.Fprintf(e.out, "Team: %s\nMembers: %s\n", team.Name(), strings.Join(team.Members(), ", "))
	return nil
}

func runJoinTeam(ctx context.Context, e *env, args []string) error {
	fs := newFlags("join-team", e.errOut)
	name := fs.String("name", "", "team name")
	if err := parse(fs, args, map[string]*string{"name": name}); err != nil {
		return err
	}

	if err := e.uc.JoinTeam.Execute(ctx, *name); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Joined successfully")
	return nil
}

func runLeaveTeam(ctx context.Context, e *env, args []string) error {
	fs := newFlags("leave-team", e.errOut)
	if err := parse(fs, args, nil); err != nil {
		return err
	}

	if err := e.uc.LeaveTeam.Execute(ctx); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Left team successfully")
	return nil
}

func runMyTeam(ctx context.Context, e *env, args []string) error {
	fs := newFlags("my-team", e.errOut)
	if err := parse(fs, args, nil); err != nil {
		return err
	}

	team, err := e.uc.GetMyTeam.Execute(ctx)
	if err != nil {
		return err
	}
	members := "(none)"
	if team.Size() > 0 {
		members = strings.Join(team.Members(), ", ")
	}
	fmt.Fprintf(e.out, "Team: %s\nMembers: %s\n", team.Name(), members)
	return nil
}

func runAverage(ctx context.Context, e *env, args []string) error {
	fs := newFlags("average", e.errOut)
	course := fs.String("course", "", "course code")
	if err := parse(fs, args, map[string]*string{"course": course}); err != nil {
		return err
	}

	avg, err := e.uc.GetAverageGrade.Execute(ctx, *course)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Average Grade: %.2f\n", avg)
	return nil
}

func runTop(ctx context.Context, e *env, args []string) error {
	fs := newFlags("top", e.errOut)
	course := fs.String("course", "", "course code")
	if err := parse(fs, args, map[string]*string{"course": course}); err != nil {
		return err
	}

	top, err := e.uc.GetTopGrade.Execute(ctx, *course)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Top Grade: %d\n", top)
	return nil
}
