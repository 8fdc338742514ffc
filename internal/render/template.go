package render

// 页面模板：zh-CN 单页，头部 + 来源栏 + 新闻卡片 + 空态 + 页脚
const pageTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}}</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
    body {
      font-family: "PingFang SC", "Hiragino Sans GB", "Microsoft YaHei",
                   system-ui, -apple-system, sans-serif;
      background: #f0f2f5;
      color: #333;
      line-height: 1.6;
    }
    header {
      background: linear-gradient(135deg, #1b5e20 0%, #004d40 60%, #01579b 100%);
      color: #fff;
      padding: 32px 24px 22px;
      text-align: center;
      box-shadow: 0 2px 10px rgba(0,0,0,.2);
    }
    header h1 { font-size: 1.9rem; font-weight: 700; letter-spacing: .08em; }
    header .subtitle { margin-top: 8px; font-size: .85rem; opacity: .85; }
    .sources {
      background: #fff;
      padding: 14px 24px;
      text-align: center;
      box-shadow: 0 1px 4px rgba(0,0,0,.06);
      overflow-x: auto;
      white-space: nowrap;
    }
    .sources .label { font-size: .8rem; color: #888; margin-right: 8px; }
    .src-tag {
      display: inline-block;
      font-size: .75rem;
      padding: 3px 10px;
      margin: 3px 4px;
      border-radius: 14px;
      background: #e8f5e9;
      color: #2e7d32;
      text-decoration: none;
    }
    .src-tag:hover { background: #c8e6c9; }
    .container { max-width: 860px; margin: 24px auto; padding: 0 16px; }
    .stats { text-align: center; font-size: .82rem; color: #999; margin-bottom: 16px; }
    .card {
      background: #fff;
      border-radius: 10px;
      padding: 20px 24px;
      margin-bottom: 14px;
      box-shadow: 0 1px 4px rgba(0,0,0,.06);
      transition: transform .18s, box-shadow .18s;
    }
    .card:hover { transform: translateY(-3px); box-shadow: 0 6px 18px rgba(0,0,0,.1); }
    .card-header { display: flex; align-items: center; gap: 10px; margin-bottom: 10px; }
    .badge {
      display: inline-block;
      font-size: .73rem;
      font-weight: 600;
      padding: 2px 10px;
      border-radius: 12px;
    }
    .meta { font-size: .76rem; color: #999; }
    .card-title { font-size: 1.05rem; font-weight: 600; margin-bottom: 6px; }
    .card-title a { color: #222; text-decoration: none; }
    .card-title a:hover { color: #1b5e20; text-decoration: underline; }
    .card-summary { font-size: .9rem; color: #555; }
    .empty { text-align: center; padding: 60px 20px; color: #aaa; font-size: 1rem; }
    footer { text-align: center; padding: 24px 16px; font-size: .78rem; color: #aaa; }
    @media (max-width: 600px) {
      header h1 { font-size: 1.4rem; }
      .card { padding: 16px; }
    }
  </style>
</head>
<body>

  <header>
    <h1>{{.Title}}</h1>
    <p class="subtitle">实时聚合 10 大油气行业权威媒体 · 最后更新：{{.UpdatedAt}}（每小时自动刷新）</p>
  </header>

  <div class="sources">
    <span class="label">数据来源：</span>
    {{- range .Sources}}
    <a href="{{.URL}}" target="_blank" rel="noopener" class="src-tag">{{.Name}}</a>
    {{- end}}
  </div>

  <main class="container">
    <p class="stats">共聚合 {{.Total}} 条新闻</p>
{{- if .Cards}}
{{- range .Cards}}
    <article class="card">
      <div class="card-header">
        <span class="badge" style="background:{{.BadgeBG}};color:{{.BadgeFG}}">{{.Category}}</span>
        <span class="meta">{{.Meta}}</span>
      </div>
      <h3 class="card-title">{{if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
      <p class="card-summary">{{.Summary}}</p>
    </article>
{{- end}}
{{- else}}
    <div class="empty">暂未获取到新闻，请检查网络后重试。</div>
{{- end}}
  </main>

  <footer>
    {{.Title}} &copy; {{.Year}}
  </footer>

</body>
</html>
`
