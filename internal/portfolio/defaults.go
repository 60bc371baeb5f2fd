package portfolio

// Storage keys. They match the keys earlier deployments wrote, so existing
// data keeps loading.
const (
	KeyHero       = "ast_hero"
	KeyAbout      = "ast_about"
	KeyExperience = "ast_exp_data"
	KeyEducation  = "ast_edu_data_final"
	KeyProjects   = "ast_proj_data"
	KeySkills     = "ast_skills_data"
)

func DefaultHero() Hero {
	return Hero{
		Name:        "Abdus Samie Tahir",
		Accent:      "Tahir.",
		Role:        "Full Stack Developer | Software Engineer",
		Description: "Building Scalable Web & Application Solutions | Open to Work (Software Developer & Full Stack Engineer roles)",
		Image:       "https://github.com/abdussamietahir2006-stack/Profile-pic/raw/b8e4744c9069f8ac9337635c03bf1b55f392708e/WhatsApp%20Image%202026-01-11%20at%2010.12.00%20PM.jpeg",
	}
}

func DefaultAbout() About {
	return About{
		P1: "I am currently pursuing a Bachelor’s degree in Computer Software Engineering at NUST (expected graduation July 2028), where I translate complex problems into elegant code.",
		P2: "I am passionate about Full Stack and software development, with hands-on experience building web applications using Java, JavaScript, React.js, HTML, CSS, and databases. I enjoy solving complex problems, learning new frameworks, and applying best practices to deliver high-quality applications.",
		P3: "Alongside my studies, I am gaining professional experience as a Human Resources Intern at GAOTek Inc., contributing to recruitment, onboarding, employee engagement, and HR administration. I aim to combine my technical expertise with HR operations to create innovative, efficient, and inclusive solutions.",
	}
}

func DefaultExperience() []Experience {
	return []Experience{
		{
			ID:       "1",
			Role:     "Human Resources Intern",
			Company:  "GAOTek Inc.",
			Period:   "Sep 2025 – Present",
			Location: "Remote",
			Details: []string{
				"Recruitment & Selection Support",
				"Onboarding & Orientation",
				"Employee Record Management & Engagement",
				"HR Administration & Reporting",
			},
		},
	}
}

func DefaultEducation() []Education {
	grade := "Grade: A"
	return []Education{
		{
			ID:          "1",
			Degree:      "Bachelor’s in Computer Software Engineering",
			Institution: "National University of Sciences and Technology (NUST)",
			Period:      "Oct 2024 – Jul 2028",
			Grade:       &grade,
			Activities:  []string{"Devcon 2025 team", "Sports participation"},
		},
		{
			ID:          "2",
			Degree:      "Intermediate Pre-Engineering",
			Institution: "Punjab Group Of Colleges",
			Period:      "2022",
		},
	}
}

func DefaultProjects() []Project {
	return []Project{
		{
			ID:          "1",
			Title:       "Basti The Food Street",
			Date:        "Nov 2025 – Jan 2026",
			Description: "A flagship NUST project: A high-fidelity, responsive restaurant application with an interactive interface and full reservation system.",
			Features:    []string{"Dynamic Menu Explorer", "Cloud Reservation System", "Interactive UX Elements"},
			Tech:        []string{"React.js", "JavaScript", "Tailwind CSS", "Node.js"},
			LiveLink:    "https://basti-the-food-street.vercel.app/",
			GithubLink:  "https://github.com/abdussamietahir2006-stack/basti-the-food-street",
			Image:       "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?q=80&w=2070&auto=format&fit=crop",
		},
	}
}

func DefaultSkills() []SkillGroup {
	return []SkillGroup{
		{ID: "1", Title: "Programming", Skills: []string{"JavaScript", "React.js", "Java", "HTML", "CSS"}},
		{ID: "2", Title: "Design", Skills: []string{"UI/UX Design", "Responsive Design", "Tailwind CSS"}},
		{ID: "3", Title: "HR & Operations", Skills: []string{"Recruitment", "Onboarding", "Engagement"}},
	}
}

// Achievements returns the static achievements section.
func Achievements() []Achievement {
	return []Achievement{
		{
			Title:       "Certificate – Code Quest 2025",
			Description: "Strengthened problem-solving, coding fundamentals, and software development skills.",
		},
	}
}

// ContactLinks returns the static contact section.
func ContactLinks() []ContactLink {
	return []ContactLink{
		{Name: "Email", Value: "abdu.ssamietahir2006@gmail.com", Href: "mailto:abdu.ssamietahir2006@gmail.com"},
		{Name: "LinkedIn", Value: "Abdus Samie Tahir", Href: "https://www.linkedin.com/in/abdus-samie-tahir-3648aa320"},
		{Name: "GitHub", Value: "@abdussamietahir2006-stack", Href: "https://github.com/abdussamietahir2006-stack"},
	}
}
