package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/pkazmierczak/musicorganizer/internal"
)

type choice int

const (
	skipFile choice = iota
	skipAll
	replaceFile
	replaceAll
)

var choiceLabels = []string{
	skipFile:    "Skip file",
	skipAll:     "Skip all",
	replaceFile: "Replace file",
	replaceAll:  "Replace all",
}

// resolver asks what to do with one conflict.
type resolver interface {
	choose(rec internal.ConflictRecord, remaining int) (choice, error)
}

type surveyResolver struct{}

func (surveyResolver) choose(rec internal.ConflictRecord, remaining int) (choice, error) {
	prompt := &survey.Select{
		Message: fmt.Sprintf("%s already exists in %s (%d left):", rec.FileName, rec.NewLocationDir, remaining),
		Options: choiceLabels,
		Default: choiceLabels[skipFile],
	}

	selected := 0
	if err := survey.AskOne(prompt, &selected); err != nil {
		return skipAll, err
	}
	return choice(selected), nil
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveConflicts drives c with the choices of r until every conflict is
// decided. An aborted prompt skips whatever is left.
func resolveConflicts(c *internal.ConflictController, r resolver, logger *log.Logger) error {
	for !c.Done() {
		rec, _ := c.Current()
		ch, err := r.choose(rec, len(c.Remaining()))
		if err != nil {
			c.SkipAll()
			return err
		}

		switch ch {
		case skipFile:
			err = c.SkipOne()
		case skipAll:
			c.SkipAll()
		case replaceFile:
			err = c.ReplaceOne()
		case replaceAll:
			err = c.ReplaceAll()
		}
		if err != nil {
			logger.Warnf("conflict: %v", err)
		}
	}
	return nil
}
