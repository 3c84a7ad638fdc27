package recommend

type templateGroup struct {
	Key      string
	Projects []Project
}

// defaultTemplates is ordered; earlier keys win when several match.
var defaultTemplates = []templateGroup{
	{
		Key: "python",
		Projects: []Project{
			{
				Title:       "Automated Trading Bot",
				TechStack:   []string{"Python", "Pandas", "API Integration"},
				Difficulty:  "Intermediate",
				Description: "Develop a bot that fetches real-time market data and executes trades based on technical indicators.",
				Bullets: []string{
					"Architected a real-time data pipeline using Python and REST APIs to process market volatility.",
					"Implemented technical analysis algorithms using Pandas, resulting in a 15% improvement in strategy backtesting efficiency.",
				},
			},
			{
				Title:       "RESTful API with Flask/FastAPI",
				TechStack:   []string{"Python", "FastAPI", "PostgreSQL", "Docker"},
				Difficulty:  "Beginner",
				Description: "Build a scalable backend API for a task management system with JWT authentication.",
				Bullets: []string{
					"Developed a high-performance RESTful API using FastAPI and PostgreSQL, handling 500+ requests per second.",
					"Containerized the application using Docker, reducing deployment time by 40%.",
				},
			},
		},
	},
	{
		Key: "react",
		Projects: []Project{
			{
				Title:       "Interactive Dashboard",
				TechStack:   []string{"React", "Tailwind CSS", "Recharts"},
				Difficulty:  "Intermediate",
				Description: "Create a data visualization dashboard for tracking personal finance or SaaS metrics.",
				Bullets: []string{
					"Built a responsive analytics dashboard using React and Tailwind CSS, improving user engagement by 25%.",
					"Integrated Recharts for dynamic data visualization, enabling users to track complex metrics in real-time.",
				},
			},
		},
	},
	{
		Key: "machine learning",
		Projects: []Project{
			{
				Title:       "Sentiment Analysis Tool",
				TechStack:   []string{"Python", "Scikit-learn", "NLTK", "Flask"},
				Difficulty:  "Intermediate",
				Description: "Build a tool that analyzes social media sentiment for specific brands or products.",
				Bullets: []string{
					"Developed a sentiment analysis engine using Scikit-learn and NLTK with an 85% accuracy rate on Twitter data.",
					"Deployed the model as a web service using Flask, providing real-time insights via a REST API.",
				},
			},
		},
	},
	{
		Key: "docker",
		Projects: []Project{
			{
				Title:       "Microservices Orchestration",
				TechStack:   []string{"Docker", "Docker Compose", "Nginx", "Redis"},
				Difficulty:  "Advanced",
				Description: "Set up a multi-container environment with load balancing and caching.",
				Bullets: []string{
					"Optimized system architecture by implementing Docker Compose for microservices orchestration.",
					"Configured Nginx as a reverse proxy and Redis for caching, reducing latency by 30%.",
				},
			},
		},
	},
}

const fallbackKey = "python"

var defaultTips = []string{
	"Quantify your achievements using the Google X-Y-Z formula (Accomplished [X] as measured by [Y], by doing [Z]).",
	"Ensure your GitHub profile has a clean README for your top 3 projects.",
	"Include a 'Technical Skills' section categorized by Languages, Frameworks, and Tools.",
}
