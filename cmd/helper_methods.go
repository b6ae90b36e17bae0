package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/profiles"
	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/utils"
	"github.com/thecoblack/edtoken/internal/workflows"
)

// readSecret reads hidden input. Tests replace it.
var readSecret = utils.ReadPassphrase

// commandRunner runs expanded templates. Tests replace it.
var commandRunner workflows.Runner = workflows.ShellRunner{}

func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// passphrasePrompt returns a PassphraseFunc that pauses the spinner while
// reading. With confirm set the passphrase is asked twice.
func passphrasePrompt(s *spinner.Spinner, confirm bool) workflows.PassphraseFunc {
	return func() (string, error) {
		if s != nil && s.Active() {
			s.Stop()
			defer s.Restart()
		}

		passphrase, err := readSecret("Passphrase: ")
		if err != nil {
			return "", err
		}
		if !confirm {
			return passphrase, nil
		}

		again, err := readSecret("Repeat passphrase: ")
		if err != nil {
			return "", err
		}
		if again != passphrase {
			return "", errors.New("passphrases do not match")
		}
		return passphrase, nil
	}
}

// printProfile prints p when --show was given.
func printProfile(p *profiles.Profile) {
	if !showProfile || p == nil {
		return
	}
	fmt.Println(p.String())
}

// formatError turns a workflow error into the message shown to the user.
func formatError(err error, profile string) string {
	fail := ui.Error.Sprint("✗") + " "
	hint := "\n" + ui.Info.Sprint("→") + " "

	switch {
	case errors.Is(err, kerrors.ErrProfileNotFound):
		return fail + "Profile " + ui.Highlight.Sprint(profile) + " does not exist" +
			hint + "Run " + ui.Code.Sprint("edtoken show") + " to list profiles"

	case errors.Is(err, kerrors.ErrProfileExists):
		return fail + "Profile " + ui.Highlight.Sprint(profile) + " already exists"

	case errors.Is(err, kerrors.ErrNoTemplate):
		return fail + "Profile " + ui.Highlight.Sprint(profile) + " has no template" +
			hint + "Run " + ui.Code.Sprintf("edtoken set %s --temp '<command>'", profile) + " to add one"

	case errors.Is(err, kerrors.ErrMissingKey):
		return fail + err.Error() +
			hint + "Run " + ui.Code.Sprintf("edtoken set %s -k <key> -V <value>", profile) + " to add it"

	case errors.Is(err, kerrors.ErrWrongValueKind):
		return fail + err.Error() +
			hint + "Use " + ui.Code.Sprint("{name}") + " for plain values and " + ui.Code.Sprint("{?name}") + " for tokens"

	case errors.Is(err, kerrors.ErrPassphraseRequired):
		return fail + "A passphrase is required for encrypted values"

	case errors.Is(err, kerrors.ErrCipherUnavailable):
		return fail + "Asymmetric encryption is not available" +
			hint + "Use " + ui.Flag.Sprint("--sym") + " instead"

	case errors.Is(err, kerrors.ErrReservedKey):
		return fail + err.Error()

	case errors.Is(err, kerrors.ErrAlreadyOpen):
		return fail + "The wallet of " + ui.Highlight.Sprint(profile) + " is already open" +
			hint + "Run " + ui.Code.Sprintf("edtoken wallet close %s", profile) + " first"

	case errors.Is(err, kerrors.ErrAlreadyClosed):
		return fail + "The wallet of " + ui.Highlight.Sprint(profile) + " is not open"

	case errors.Is(err, kerrors.ErrFileNotFound):
		return fail + "Wallet file not found: " + strings.TrimPrefix(err.Error(), kerrors.ErrFileNotFound.Error()+": ")

	case errors.Is(err, kerrors.ErrInvalidCiphertext), errors.Is(err, kerrors.ErrInvalidPadding):
		return fail + "A stored token is corrupted: " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidProfileStore):
		return fail + "The profile file cannot be parsed: " + err.Error()

	case errors.Is(err, kerrors.ErrConfigExists):
		return fail + "A config file already exists" +
			hint + "Use " + ui.Flag.Sprint("--force") + " to overwrite it"

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return fail + "Invalid configuration: " + err.Error()

	default:
		return fail + err.Error()
	}
}
