package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/organ-ledger/application"
	"github.com/luca-patrignani/organ-ledger/domain/organ"
	"github.com/luca-patrignani/organ-ledger/ledger"
)

const (
	actionDonor     = "Register donor"
	actionRecipient = "Register recipient"
	actionView      = "View ledger"
	actionSearch    = "Search ledger"
	actionVerify    = "Verify ledgers"
	actionQuit      = "Quit"
)

// runShell drives the service from an interactive terminal session.
func runShell(svc *application.Service, registry *ledger.Registry) error {
	actions := []string{actionDonor, actionRecipient, actionView, actionSearch, actionVerify, actionQuit}
	for {
		choice, err := pterm.DefaultInteractiveSelect.WithOptions(actions).Show("What do you want to do?")
		if err != nil {
			return err
		}
		pterm.Println()

		switch choice {
		case actionDonor:
			err = registerDonor(svc)
		case actionRecipient:
			err = registerRecipient(svc)
		case actionView:
			err = viewLedger(svc, registry)
		case actionSearch:
			err = searchLedger(svc, registry)
		case actionVerify:
			verifyAll(registry)
		case actionQuit:
			return nil
		}
		if err != nil {
			var verr organ.ValidationError
			if errors.As(err, &verr) {
				printValidationError(verr)
				continue
			}
			return err
		}
		pterm.Println()
	}
}

func registerDonor(svc *application.Service) error {
	name, err := prompt("Donor name")
	if err != nil {
		return err
	}
	age, err := promptAge()
	if err != nil {
		return err
	}
	bloodType, err := promptBloodType()
	if err != nil {
		return err
	}
	hospital, err := prompt("Hospital")
	if err != nil {
		return err
	}

	d := organ.Donor{Name: name, Age: age, BloodType: bloodType, Hospital: hospital}
	if err := organ.ValidateDonor(d); err != nil {
		return err
	}
	b, err := svc.SubmitDonor(d)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Donor data added successfully (block #%d)", b.Index)
	return nil
}

func registerRecipient(svc *application.Service) error {
	name, err := prompt("Recipient name")
	if err != nil {
		return err
	}
	age, err := promptAge()
	if err != nil {
		return err
	}
	bloodType, err := promptBloodType()
	if err != nil {
		return err
	}
	urgency, err := prompt("Medical urgency")
	if err != nil {
		return err
	}

	r := organ.Recipient{Name: name, Age: age, BloodType: bloodType, Urgency: urgency}
	if err := organ.ValidateRecipient(r); err != nil {
		return err
	}
	spinner, _ := pterm.DefaultSpinner.Start("Looking for a matching donor ...")
	out, err := svc.SubmitRecipient(r)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()
	pterm.Println(outcomeBox(out, r.Name))
	return nil
}

func viewLedger(svc *application.Service, registry *ledger.Registry) error {
	name, err := promptLedger(registry)
	if err != nil {
		return err
	}
	blocks, err := svc.ViewLedger(name)
	if err != nil {
		return err
	}
	return printBlocks(strings.ToUpper(name[:1])+name[1:]+" ledger", blocks)
}

func searchLedger(svc *application.Service, registry *ledger.Registry) error {
	name, err := promptLedger(registry)
	if err != nil {
		return err
	}
	term, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Search term").Show()
	if err != nil {
		return err
	}
	blocks, err := svc.SearchLedger(name, term)
	if err != nil {
		return err
	}
	return printBlocks("Results for \""+term+"\" in "+name, blocks)
}

func verifyAll(registry *ledger.Registry) {
	for _, name := range registry.Names() {
		l, _ := registry.Get(name)
		if err := l.Verify(); err != nil {
			pterm.Error.Printfln("%s: %v", name, err)
			continue
		}
		pterm.Success.Printfln("%s: %d blocks, chain intact", name, l.Len())
	}
}

func prompt(label string) (string, error) {
	v, err := pterm.DefaultInteractiveTextInput.WithDefaultText(label).Show()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func promptAge() (int, error) {
	v, err := prompt("Age")
	if err != nil {
		return 0, err
	}
	age, err := strconv.Atoi(v)
	if err != nil {
		return 0, organ.ValidationError{"age": "must be a valid number"}
	}
	return age, nil
}

func promptBloodType() (organ.BloodType, error) {
	options := make([]string, len(organ.BloodTypes))
	for i, b := range organ.BloodTypes {
		options[i] = string(b)
	}
	v, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Blood type")
	if err != nil {
		return "", err
	}
	return organ.BloodType(v), nil
}

func promptLedger(registry *ledger.Registry) (string, error) {
	return pterm.DefaultInteractiveSelect.WithOptions(registry.Names()).Show("Ledger")
}
