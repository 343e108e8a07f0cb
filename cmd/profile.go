package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// profileCmd holds the flags for the 'profile' subcommand.
type profileCmd struct {
	name      string
	age       int
	income    float64
	goal      string
	horizon   int
	tolerance string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "analyze a financial profile and suggest a portfolio style" }
func (*profileCmd) Usage() string {
	return `fpl profile [-name <name>] [-age <years>] [-income <amount>] [-goal <goal>] [-horizon <years>] [-risk low|medium|high]

  Suggests a defensive, balanced or dynamic portfolio from a financial profile.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Your name")
	f.IntVar(&c.age, "age", 30, "Your age, at least 18")
	f.Float64Var(&c.income, "income", 0, "Your yearly income")
	f.StringVar(&c.goal, "goal", string(finplan.Retirement), "Investment goal: retirement, growth, income or short-term")
	f.IntVar(&c.horizon, "horizon", 10, "Investment horizon in years, from 1 to 50")
	f.StringVar(&c.tolerance, "risk", "medium", "Risk tolerance: low, medium or high")
}

func (c *profileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tolerance, err := finplan.ParseTolerance(c.tolerance)
	if err != nil {
		return fail("parsing risk tolerance", err)
	}
	goal, err := finplan.ParseGoal(c.goal)
	if err != nil {
		return fail("parsing goal", err)
	}
	p := finplan.Profile{Name: c.name, Age: c.age, Income: c.income, Goal: goal, Horizon: c.horizon, Tolerance: tolerance}
	r, err := p.Recommend()
	if err != nil {
		return fail("analyzing profile", err)
	}
	printMarkdown(renderer.ProfileMarkdown(p, r))
	return subcommands.ExitSuccess
}
