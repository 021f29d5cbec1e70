package skills

// categoryRules is the quick-match table. Rule order is significant: both the
// exact pass and the substring pass return the first matching category.
var categoryRules = []categoryRule{
	{
		category: Languages,
		tokens: newTokenSet(
			"python", "javascript", "typescript", "java", "go", "golang", "sql", "rust", "c",
			"c++", "c#", "ruby", "php", "kotlin", "swift", "scala", "r", "bash", "shell",
			"powershell", "perl", "dart", "elixir", "erlang", "haskell", "clojure", "lua",
			"matlab", "objective-c", "groovy", "julia", "solidity", "f#", "ocaml", "zig",
			"assembly", "cobol", "fortran", "visual basic",
		),
	},
	{
		category: Frontend,
		tokens: newTokenSet(
			"react", "vue", "angular", "svelte", "next.js", "nuxt", "nuxt.js", "html", "html5",
			"css", "css3", "sass", "scss", "tailwind", "tailwind css", "tailwindcss", "bootstrap",
			"jquery", "redux", "vite", "material ui", "material-ui", "chakra ui", "ember.js",
			"backbone.js", "gatsby", "remix", "solidjs", "htmx", "three.js", "d3.js",
			"react native", "flutter",
		),
	},
	{
		category: Backend,
		tokens: newTokenSet(
			"node.js", "node", "express", "express.js", "django", "flask", "fastapi", "spring",
			"spring boot", "rails", "ruby on rails", "laravel", "asp.net", "asp.net core", ".net",
			"nestjs", "gin gonic", "fastify", "koa", "hapi", "symfony", "phoenix", "graphql",
			"rest api", "restful apis", "grpc", "microservices", "celery", "sqlalchemy",
		),
	},
	{
		category: Databases,
		tokens: newTokenSet(
			"postgresql", "postgres", "mysql", "mongodb", "mongo", "redis", "sqlite", "mariadb",
			"oracle", "sql server", "mssql", "dynamodb", "cassandra", "elasticsearch",
			"firestore", "supabase", "neo4j", "couchdb", "cockroachdb", "influxdb", "snowflake",
			"bigquery", "nosql", "prisma", "sequelize", "mongoose", "typeorm", "memcached",
			"clickhouse",
		),
	},
	{
		category: CloudDevOps,
		tokens: newTokenSet(
			"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "terraform", "ansible",
			"jenkins", "github actions", "gitlab ci", "circleci", "travis ci", "ci/cd", "helm",
			"nginx", "linux", "heroku", "vercel", "netlify", "cloudflare", "serverless",
			"aws lambda", "ec2", "s3", "prometheus", "grafana", "openshift", "argocd", "pulumi",
			"vagrant", "datadog", "istio", "firebase",
		),
	},
	{
		category: Tools,
		tokens: newTokenSet(
			"git", "github", "gitlab", "bitbucket", "jira", "confluence", "postman", "figma",
			"vs code", "vscode", "intellij", "vim", "slack", "notion", "npm", "yarn", "pnpm",
			"webpack", "babel", "eslint", "jest", "pytest", "selenium", "cypress", "playwright",
			"storybook", "trello", "swagger", "insomnia", "xcode", "android studio", "maven",
			"gradle", "cmake", "homebrew", "tableau", "jupyter", "sentry",
		),
	},
}

// aliases maps lower-cased spellings to the canonical display name.
var aliases = map[string]string{
	"js":                    "JavaScript",
	"javascript":            "JavaScript",
	"ts":                    "TypeScript",
	"typescript":            "TypeScript",
	"py":                    "Python",
	"python":                "Python",
	"python3":               "Python",
	"golang":                "Go",
	"go":                    "Go",
	"java":                  "Java",
	"cpp":                   "C++",
	"c++":                   "C++",
	"csharp":                "C#",
	"c#":                    "C#",
	"ruby":                  "Ruby",
	"rust":                  "Rust",
	"php":                   "PHP",
	"kotlin":                "Kotlin",
	"swift":                 "Swift",
	"sql":                   "SQL",
	"html":                  "HTML",
	"html5":                 "HTML",
	"css":                   "CSS",
	"css3":                  "CSS",
	"react":                 "React",
	"react.js":              "React",
	"reactjs":               "React",
	"vue":                   "Vue",
	"vue.js":                "Vue",
	"vuejs":                 "Vue",
	"angular":               "Angular",
	"angularjs":             "Angular",
	"next.js":               "Next.js",
	"nextjs":                "Next.js",
	"svelte":                "Svelte",
	"tailwind":              "Tailwind CSS",
	"tailwindcss":           "Tailwind CSS",
	"tailwind css":          "Tailwind CSS",
	"react native":          "React Native",
	"react-native":          "React Native",
	"node":                  "Node.js",
	"node.js":               "Node.js",
	"nodejs":                "Node.js",
	"express":               "Express",
	"express.js":            "Express",
	"expressjs":             "Express",
	"django":                "Django",
	"flask":                 "Flask",
	"fastapi":               "FastAPI",
	"spring boot":           "Spring Boot",
	"springboot":            "Spring Boot",
	"graphql":               "GraphQL",
	"nestjs":                "NestJS",
	"nest.js":               "NestJS",
	"postgres":              "PostgreSQL",
	"postgresql":            "PostgreSQL",
	"psql":                  "PostgreSQL",
	"mysql":                 "MySQL",
	"mongo":                 "MongoDB",
	"mongodb":               "MongoDB",
	"redis":                 "Redis",
	"sqlite":                "SQLite",
	"dynamodb":              "DynamoDB",
	"elasticsearch":         "Elasticsearch",
	"aws":                   "AWS",
	"amazon web services":   "AWS",
	"gcp":                   "GCP",
	"google cloud platform": "GCP",
	"azure":                 "Azure",
	"microsoft azure":       "Azure",
	"docker":                "Docker",
	"k8s":                   "Kubernetes",
	"kubernetes":            "Kubernetes",
	"terraform":             "Terraform",
	"ci/cd":                 "CI/CD",
	"cicd":                  "CI/CD",
	"github actions":        "GitHub Actions",
	"git":                   "Git",
	"github":                "GitHub",
	"gitlab":                "GitLab",
	"jira":                  "Jira",
	"postman":               "Postman",
	"figma":                 "Figma",
	"vscode":                "VS Code",
	"vs code":               "VS Code",
	"npm":                   "npm",
}

// exclusions lists tokens that must never remain in a category after
// external classification.
var exclusions = map[Category]tokenSet{
	Languages: newTokenSet(
		"react", "vue", "angular", "html", "css", "tailwind css", "next.js", "node.js",
		"express", "django", "flask", "fastapi", "spring boot", "graphql", "postgresql",
		"mysql", "mongodb", "redis", "sqlite", "docker", "kubernetes", "aws", "terraform",
		"git",
	),
	Frontend: newTokenSet(
		"javascript", "typescript", "python", "java", "node.js", "express", "django",
		"postgresql", "mongodb", "docker", "aws", "git",
	),
	Backend: newTokenSet(
		"python", "java", "go", "javascript", "typescript", "react", "vue", "angular",
		"postgresql", "mysql", "mongodb", "redis", "docker", "kubernetes", "aws",
	),
	Databases: newTokenSet(
		"sql", "python", "react", "node.js", "docker", "aws",
	),
	CloudDevOps: newTokenSet(
		"git", "github", "jira", "python", "react", "node.js", "postgresql",
	),
	Tools: newTokenSet(
		"docker", "kubernetes", "aws", "terraform", "python", "javascript", "react",
		"postgresql",
	),
}
