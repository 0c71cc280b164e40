package pipeline

import "fmt"

// Follow-up email templates. Content matches the Nodari AI outreach voice;
// contact name falls back to the company name upstream.

func hotLeadEmail(companyName, contactName, meetingLink string) (subject, html string) {
	meetingSection := ""
	if meetingLink != "" {
		meetingSection = fmt.Sprintf(`
    <p><strong>Your Meeting is Confirmed!</strong></p>
    <p>Join here: <a href="%s">%s</a></p>
    <hr>
`, meetingLink, meetingLink)
	}

	subject = fmt.Sprintf("Your AI Proposal - %s x Nodari AI", companyName)
	html = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <p>Hi %s,</p>

    <p>Thank you for the great conversation! I'm excited about the potential
    to help %s with your AI initiatives.</p>
%s
    <p>As promised, I've attached a proposal outlining our recommended approach.
    Please take a look and let me know if you have any questions.</p>

    <p><strong>Key highlights:</strong></p>
    <ul>
        <li>Custom AI solution tailored to your needs</li>
        <li>Proven implementation methodology</li>
        <li>Dedicated support throughout the project</li>
    </ul>

    <p>Looking forward to our next conversation!</p>

    <p>Best regards,<br>
    <strong>Nodari AI Team</strong><br>
    <a href="https://nodari.ai">nodari.ai</a></p>
</body>
</html>`, contactName, companyName, meetingSection)
	return subject, html
}

func warmLeadEmail(companyName, contactName string) (subject, html string) {
	const caseStudyLink = "https://nodari.ai/case-studies"

	subject = "AI Success Story - Thought You'd Find This Interesting"
	html = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <p>Hi %s,</p>

    <p>Thank you for taking the time to speak with me about %s's
    AI initiatives. I enjoyed learning about your goals.</p>

    <p>I thought you might find this case study interesting - it covers how
    we helped a company in a similar situation achieve significant results:</p>

    <p style="text-align: center; margin: 20px 0;">
        <a href="%s"
           style="background-color: #2563eb; color: white; padding: 12px 24px;
                  text-decoration: none; border-radius: 6px; display: inline-block;">
            View Case Study
        </a>
    </p>

    <p>When you're ready to explore how we might help %s,
    I'd be happy to set up a follow-up discussion.</p>

    <p>Best regards,<br>
    <strong>Nodari AI Team</strong><br>
    <a href="https://nodari.ai">nodari.ai</a></p>
</body>
</html>`, contactName, companyName, caseStudyLink, companyName)
	return subject, html
}

func nurtureEmail(contactName string) (subject, html string) {
	subject = "Resources for Your AI Journey"
	html = fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <p>Hi %s,</p>

    <p>Thanks for your interest in Nodari AI. I wanted to share some
    resources that might be helpful as you explore AI solutions:</p>

    <p><strong>Popular Resources:</strong></p>
    <ul>
        <li><a href="https://nodari.ai/blog/ai-implementation-guide">
            AI Implementation Guide for Business Leaders</a></li>
        <li><a href="https://nodari.ai/blog/ai-roi-calculator">
            How to Calculate AI ROI</a></li>
        <li><a href="https://nodari.ai/case-studies">
            Customer Success Stories</a></li>
    </ul>

    <p>If you ever want to discuss how AI might help your business,
    I'm happy to chat - no pressure.</p>

    <p>Best regards,<br>
    <strong>Nodari AI Team</strong><br>
    <a href="https://nodari.ai">nodari.ai</a></p>
</body>
</html>`, contactName)
	return subject, html
}
