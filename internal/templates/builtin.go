package templates

import "github.com/mermaidkeep/mermaidkeep/internal/diagram"

// builtin is the template library. Keep ids stable: saved diagrams may
// reference the template they started from.
var builtin = []Template{
	{
		ID:          "tpl-business-swot-001",
		Name:        "SWOT Analysis Matrix",
		Description: "Strategic planning framework to identify Strengths, Weaknesses, Opportunities, and Threats.",
		Type:        diagram.TypeFlowchart,
		Category:    CategoryBusiness,
		Difficulty:  DifficultyBeginner,
		Code: `graph TB
    subgraph "SWOT Analysis"
        subgraph Strengths
            S1[Strong Brand Recognition]
            S2[Experienced Team]
            S3[High Customer Loyalty]
        end

        subgraph Weaknesses
            W1[Limited Market Reach]
            W2[High Operating Costs]
            W3[Outdated Technology]
        end

        subgraph Opportunities
            O1[Growing Market Demand]
            O2[Digital Transformation]
            O3[Strategic Partnerships]
        end

        subgraph Threats
            T1[Intense Competition]
            T2[Economic Downturn]
            T3[Regulatory Changes]
        end
    end

    style Strengths fill:#10b981,stroke:#059669,color:#fff
    style Weaknesses fill:#ef4444,stroke:#dc2626,color:#fff
    style Opportunities fill:#3b82f6,stroke:#2563eb,color:#fff
    style Threats fill:#f59e0b,stroke:#d97706,color:#fff`,
	},
	{
		ID:          "tpl-business-journey-002",
		Name:        "Customer Journey Map",
		Description: "Visual representation of the complete customer experience from awareness to advocacy.",
		Type:        diagram.TypeJourney,
		Category:    CategoryBusiness,
		Difficulty:  DifficultyIntermediate,
		Code: `journey
    title Customer Journey - E-commerce Purchase
    section Awareness
      See social media ad: 3: Customer
      Visit website: 4: Customer
      Browse products: 4: Customer
    section Consideration
      Compare products: 4: Customer
      Read reviews: 5: Customer
      Add to cart: 5: Customer
    section Purchase
      Enter shipping info: 3: Customer
      Complete payment: 4: Customer
    section Post-Purchase
      Use product: 5: Customer
      Leave review: 4: Customer
      Recommend to friend: 5: Customer`,
	},
	{
		ID:          "tpl-business-funnel-003",
		Name:        "Sales Funnel Pipeline",
		Description: "Conversion funnel showing the customer acquisition process from awareness to purchase.",
		Type:        diagram.TypeFlowchart,
		Category:    CategoryBusiness,
		Difficulty:  DifficultyBeginner,
		Code: `graph TD
    A[Awareness<br/>10,000 Visitors] --> B[Interest<br/>5,000 Engaged]
    B --> C[Consideration<br/>2,000 Prospects]
    C --> D[Intent<br/>800 Qualified Leads]
    D --> E[Evaluation<br/>400 Opportunities]
    E --> F[Purchase<br/>200 Customers]

    A -.->|50% Drop-off| G[Left Website]
    B -.->|60% Drop-off| H[Not Interested]
    C -.->|60% Drop-off| I[Chose Competitor]

    style A fill:#8b5cf6,stroke:#7c3aed,color:#fff
    style F fill:#10b981,stroke:#059669,color:#fff`,
	},
	{
		ID:          "tpl-business-orgchart-004",
		Name:        "Organization Chart",
		Description: "Hierarchical structure showing company departments and reporting relationships.",
		Type:        diagram.TypeFlowchart,
		Category:    CategoryBusiness,
		Difficulty:  DifficultyBeginner,
		Code: `graph TD
    CEO[CEO<br/>John Smith]

    CEO --> CTO[CTO<br/>Sarah Johnson]
    CEO --> CFO[CFO<br/>Michael Chen]
    CEO --> COO[COO<br/>David Brown]

    CTO --> DevMgr[Development Manager<br/>Alex Kim]
    CTO --> QAMgr[QA Manager<br/>Lisa Wang]

    DevMgr --> FrontEnd[Frontend Team<br/>5 Engineers]
    DevMgr --> BackEnd[Backend Team<br/>6 Engineers]
    QAMgr --> QATeam[QA Team<br/>4 Testers]

    CFO --> Accounting[Accounting<br/>3 Staff]
    COO --> Operations[Operations<br/>5 Staff]

    style CEO fill:#8b5cf6,stroke:#7c3aed,color:#fff
    style CTO fill:#3b82f6,stroke:#2563eb,color:#fff
    style CFO fill:#3b82f6,stroke:#2563eb,color:#fff
    style COO fill:#3b82f6,stroke:#2563eb,color:#fff`,
	},
	{
		ID:          "tpl-technical-api-005",
		Name:        "REST API Request Flow",
		Description: "Sequence diagram showing typical REST API authentication and data retrieval.",
		Type:        diagram.TypeSequence,
		Category:    CategoryTechnical,
		Difficulty:  DifficultyIntermediate,
		Code: `sequenceDiagram
    participant Client
    participant Gateway as API Gateway
    participant Auth as Auth Service
    participant API as Resource API
    participant DB as Database

    Client->>Gateway: POST /auth/login
    Gateway->>Auth: Validate credentials
    Auth->>DB: Query user
    DB-->>Auth: User data
    Auth->>Auth: Generate JWT token
    Auth-->>Gateway: JWT token + refresh token
    Gateway-->>Client: 200 OK + tokens

    Note over Client: Store tokens securely

    Client->>Gateway: GET /api/users/profile
    Gateway->>Auth: Validate JWT
    Auth-->>Gateway: Token valid
    Gateway->>API: Forward request
    API->>DB: SELECT * FROM users WHERE id=?
    DB-->>API: User profile data
    API-->>Gateway: User profile JSON
    Gateway-->>Client: 200 OK + profile data`,
	},
	{
		ID:          "tpl-technical-git-007",
		Name:        "Git Branching Workflow",
		Description: "Git Flow branching strategy showing feature development, releases, and hotfixes.",
		Type:        diagram.TypeGit,
		Category:    CategoryTechnical,
		Difficulty:  DifficultyIntermediate,
		Code: `gitGraph
    commit id: "Initial commit"
    branch develop
    checkout develop
    commit id: "Add base structure"

    branch feature/user-auth
    checkout feature/user-auth
    commit id: "Add login page"
    commit id: "Add JWT auth"

    checkout develop
    merge feature/user-auth

    branch release/v1.0
    checkout release/v1.0
    commit id: "Bump version to 1.0"

    checkout main
    merge release/v1.0 tag: "v1.0.0"

    checkout main
    branch hotfix/security-patch
    checkout hotfix/security-patch
    commit id: "Fix XSS vulnerability"

    checkout main
    merge hotfix/security-patch tag: "v1.0.1"`,
	},
	{
		ID:          "tpl-technical-database-008",
		Name:        "Database Schema Design",
		Description: "Entity-relationship diagram for a blog platform with users, posts, comments, and categories.",
		Type:        diagram.TypeER,
		Category:    CategoryTechnical,
		Difficulty:  DifficultyIntermediate,
		Code: `erDiagram
    USERS ||--o{ POSTS : creates
    USERS ||--o{ COMMENTS : writes
    POSTS ||--o{ COMMENTS : contains
    POSTS }o--|| CATEGORIES : "belongs to"

    USERS {
        uuid id PK
        string email UK
        string username UK
        string password_hash
        timestamp created_at
    }

    POSTS {
        uuid id PK
        uuid author_id FK
        uuid category_id FK
        string title
        text content
        timestamp published_at
    }

    COMMENTS {
        uuid id PK
        uuid post_id FK
        uuid user_id FK
        text content
        timestamp created_at
    }

    CATEGORIES {
        uuid id PK
        string name UK
        string slug UK
    }`,
	},
	{
		ID:          "tpl-education-learning-009",
		Name:        "Learning Path Roadmap",
		Description: "Structured learning path for becoming a full-stack developer with clear progression stages.",
		Type:        diagram.TypeFlowchart,
		Category:    CategoryEducation,
		Difficulty:  DifficultyBeginner,
		Code: `graph LR
    Start([Start Here]) --> Basics

    subgraph "Phase 1: Foundations"
        Basics[Web Basics<br/>HTML/CSS/JS]
        Basics --> Git[Version Control<br/>Git & GitHub]
    end

    subgraph "Phase 2: Frontend"
        Git --> React[React Fundamentals]
        React --> State[State Management]
    end

    subgraph "Phase 3: Backend"
        State --> Node[Node.js<br/>Express]
        Node --> DB[Databases<br/>SQL & NoSQL]
    end

    DB --> Complete([Full-Stack Developer])

    style Start fill:#10b981,stroke:#059669,color:#fff
    style Complete fill:#8b5cf6,stroke:#7c3aed,color:#fff`,
	},
	{
		ID:          "tpl-education-timeline-011",
		Name:        "Historical Timeline",
		Description: "Chronological visualization of the evolution of programming languages.",
		Type:        diagram.TypeGantt,
		Category:    CategoryEducation,
		Difficulty:  DifficultyBeginner,
		Code: `gantt
    title Evolution of Programming Languages
    dateFormat YYYY
    axisFormat %Y

    section Early Era
    Fortran        :1957, 1957
    COBOL          :1959, 1959
    C              :1972, 1972

    section Modern Era
    Python         :1991, 1991
    Java           :1995, 1995
    JavaScript     :1995, 1995
    Go             :2009, 2009
    Rust           :2010, 2010`,
	},
	{
		ID:          "tpl-education-process-012",
		Name:        "Process Steps Tutorial",
		Description: "Step-by-step guide for the software development lifecycle with decision points.",
		Type:        diagram.TypeFlowchart,
		Category:    CategoryEducation,
		Difficulty:  DifficultyBeginner,
		Code: `graph TD
    Start([New Project Request]) --> Analysis{Requirements<br/>Clear?}

    Analysis -->|No| Gather[Gather Requirements]
    Gather --> Analysis

    Analysis -->|Yes| Design[System Design]
    Design --> Review{Design<br/>Approved?}

    Review -->|No| Design
    Review -->|Yes| Dev[Development Phase]

    Dev --> Test[Testing]
    Test --> Pass{Tests<br/>Pass?}

    Pass -->|Failed| Dev
    Pass -->|Passed| Deploy[Deploy to Production]

    Deploy --> Complete([Project Complete])

    style Start fill:#10b981,stroke:#059669,color:#fff
    style Complete fill:#8b5cf6,stroke:#7c3aed,color:#fff`,
	},
}
