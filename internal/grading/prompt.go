package grading

import (
	"fmt"
	"strings"
)

const evalSystemPrompt = `You are the head of the studio. You are very demanding but fair.
One of your assistants has just completed a task and you grade it.

Judge the work on:
1. Professional tone (formal but cordial).
2. Grammatical correctness.
3. How effectively it solves the problem.
4. Appropriate use of soft skills.

Score from 1 to 100. Reserve scores above 90 for work you would send
without changes. Keep the feedback direct and addressed to the assistant.`

const assistSystemPrompt = `You are an AI assistant built into the workspace of a professional studio.
Answer briefly and practically so the user can finish their secretarial work.
Reply with plain text only, no markdown headings and no preamble.`

func buildEvalMessage(req EvalRequest, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Studio: %s\n", req.Studio)
	fmt.Fprintf(&b, "Task: %s\n", req.Task)
	fmt.Fprintf(&b, "Task context: %s\n", req.Context)
	fmt.Fprintf(&b, "Assistant's answer/action: %q\n", req.UserContent)
	if language != "" {
		fmt.Fprintf(&b, "\nWrite feedback and suggestions in %s and judge grammar for %s.\n", language, language)
	}

	return b.String()
}

func buildAssistMessage(query, studio, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Studio: %s\n", studio)
	fmt.Fprintf(&b, "The user asks: %q\n", query)
	if language != "" {
		fmt.Fprintf(&b, "Answer in %s.\n", language)
	}

	return b.String()
}

// DraftQuery builds the assistant query asking for a reply draft to an email.
func DraftQuery(from, subject, body string) string {
	return fmt.Sprintf("Write a short, professional draft reply to this email:\nFrom: %s\nSubject: %s\nText: %s", from, subject, body)
}

// EmailReplyContext describes the email being answered, for grading.
func EmailReplyContext(from, subject, body string) string {
	return fmt.Sprintf("Reply to the email from %s with subject %q. Body: %s", from, subject, body)
}
