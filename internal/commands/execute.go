package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Days   func(DaysArgs) (Result, error)
	Remind func(RemindArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
	Show   func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDays:
		if handlers.Days == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "days handler not configured"}
		}
		return handlers.Days(*cmd.Days)
	case TypeRemind:
		if handlers.Remind == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "remind handler not configured"}
		}
		return handlers.Remind(*cmd.Remind)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
