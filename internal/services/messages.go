package services

import (
	"fmt"

	"eventlottery/internal/domain"
)

type message struct {
	title    string
	body     string
	category domain.NotificationCategory
}

func drawMessage(kind domain.DrawKind, eventName string) message {
	if kind == domain.DrawKindReplacement {
		return message{
			title:    "A spot opened up!",
			body:     fmt.Sprintf("You have been selected from the waiting list for %s. Please accept or decline your invitation.", eventName),
			category: domain.CategoryReplacementSelected,
		}
	}
	return message{
		title:    "You have been selected!",
		body:     fmt.Sprintf("Congratulations! You have been selected in the lottery for %s. Please accept or decline your invitation.", eventName),
		category: domain.CategoryLotterySelected,
	}
}

func poolMessage(pool domain.EntrantPool, eventName string) message {
	switch pool {
	case domain.PoolSelected:
		return message{
			title:    "Reminder: respond to your invitation",
			body:     fmt.Sprintf("You were selected for %s. Please accept or decline so the spot is not released.", eventName),
			category: domain.CategorySelectedReminder,
		}
	case domain.PoolNotSelected:
		return message{
			title:    "Lottery results",
			body:     fmt.Sprintf("You were not selected for %s this time. You remain on the waiting list and may be chosen if a spot opens up.", eventName),
			category: domain.CategoryNotSelected,
		}
	case domain.PoolCanceled:
		return message{
			title:    "Your spot was released",
			body:     fmt.Sprintf("Your spot in %s has been canceled.", eventName),
			category: domain.CategoryCanceledNotice,
		}
	default:
		return message{
			title:    "Waiting list update",
			body:     fmt.Sprintf("You are on the waiting list for %s. The lottery runs once registration closes.", eventName),
			category: domain.CategoryWaitingList,
		}
	}
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreFailure, err)
}
