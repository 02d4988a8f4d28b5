package pathgen

import (
	"fmt"
	"strings"
)

const outlineSystemPrompt = `You are an experienced curriculum designer. You turn a topic into a structured, gamified learning path that takes a motivated self-learner from fundamentals to applied skill.`

func buildOutlineUserMessage(topic, skillLevel string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	if skillLevel != "" {
		b.WriteString(fmt.Sprintf("Learner skill level: %s\n", skillLevel))
	}

	b.WriteString(`
Instructions:
Design a learning path for this topic:
1. 2-4 units, ordered from fundamentals to advanced. Each unit gets a short title, a one-sentence description, a display color (hex), and a boss challenge: a capstone task that proves the unit is mastered.
2. Each unit has 3-5 levels, ordered so each builds on the previous. Each level gets a title, description, a single emoji icon, and a small hands-on challenge project.
3. Each level has 3-5 lessons, ordered. Each lesson gets a title, a description of what the learner takes away, and a searchHint: a concise video search query (4-8 words) that would find a good tutorial for exactly that lesson.
4. searchHint must be specific enough to find the lesson's subject, not the topic in general. Include the topic name when the lesson title alone is ambiguous.
5. Keep titles concrete. No filler lessons like "Introduction" without a real subject.`)

	return b.String()
}

const quickDiveSystemPrompt = `You are a learning-resource curator. You suggest the best individual resources for quickly getting into a topic.`

func buildQuickDiveUserMessage(topic string, count int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	b.WriteString(fmt.Sprintf(`
Instructions:
Suggest %d learning resources for this topic:
1. Mix kinds: videos, articles, courses, books, podcasts. Favor videos for hands-on subjects.
2. Order from beginner-friendly to advanced.
3. Each suggestion gets a searchHint: a concise search query (4-8 words) that would locate the resource or its best equivalent.`, count))

	return b.String()
}
