package http

import nethttp "net/http"

func dashboardHandler(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	_, _ = w.Write([]byte(dashboardHTML))
}

func faviconHandler(w nethttp.ResponseWriter, _ *nethttp.Request) {
	w.WriteHeader(nethttp.StatusNoContent)
}

const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Shelter Pet Priority Board</title>
  <style>
    @import url("https://fonts.googleapis.com/css?family=Open+Sans:300,400,600,700");

    :root {
      --brand: #0e5d8f;
      --brand-2: #0971b2;
      --bg: #f7f7f7;
      --paper: #fff;
      --text: #333;
      --muted: #777;
      --line: #ddd;
      --line-soft: #eee;
      --head: #f0f0f0;
      --high: #FF6B6B;
      --medium: #FFD166;
      --low: #06D6A0;
      --bad-bg: #f2dede;
      --bad-text: #a94442;
    }

    * { box-sizing: border-box; }

    body {
      margin: 0;
      background: var(--bg);
      color: var(--text);
      font-family: "Open Sans", "Helvetica Neue", Helvetica, Arial, sans-serif;
      font-size: 14px;
      line-height: 1.42857143;
    }

    header {
      background: linear-gradient(to right, var(--brand) 0, var(--brand-2) 100%);
      border-bottom: 1px solid #0b4e79;
      box-shadow: 0 2px 5px rgba(0, 0, 0, 0.15);
    }

    .container {
      margin-right: auto;
      margin-left: auto;
      padding-left: 15px;
      padding-right: 15px;
      width: 100%;
      max-width: 1480px;
    }

    .header-inner {
      min-height: 70px;
      display: flex;
      align-items: center;
      justify-content: space-between;
      gap: 16px;
    }

    .navbar-brand { color: #fff; font-size: 22px; font-weight: 300; }
    .navbar-brand strong { font-weight: 600; }
    .navbar-note { color: rgba(255, 255, 255, 0.88); font-size: 13px; text-align: right; }

    .risk-note {
      text-align: center;
      background-color: #ffb400;
      padding: 8px;
      font-size: 13px;
      color: #222;
    }

    main { padding: 18px 0 32px; }

    .layout {
      display: grid;
      grid-template-columns: 240px 1fr 1.1fr;
      gap: 14px;
      align-items: start;
    }

    .card {
      background: var(--paper);
      border: 1px solid var(--line);
      border-radius: 4px;
      padding: 14px;
      margin-bottom: 14px;
    }

    .card h2 {
      margin: 0 0 10px;
      font-size: 16px;
      font-weight: 600;
      color: var(--brand);
      border-bottom: 1px solid var(--line-soft);
      padding-bottom: 6px;
    }

    .hint { color: var(--muted); font-size: 12px; margin-top: 6px; }
    .mono { font-family: Menlo, Consolas, monospace; font-size: 12px; }

    .banner {
      display: none;
      background: var(--bad-bg);
      color: var(--bad-text);
      border: 1px solid #ebccd1;
      border-radius: 4px;
      padding: 10px 12px;
      margin-bottom: 14px;
    }
    .banner.show { display: block; }

    .filter-item { display: flex; align-items: center; gap: 6px; margin-bottom: 4px; }
    .filter-actions { margin-top: 10px; display: flex; gap: 6px; flex-wrap: wrap; }

    button {
      border: 1px solid #c7d7e5;
      background: #fff;
      color: var(--brand);
      border-radius: 3px;
      padding: 5px 10px;
      cursor: pointer;
      font-size: 13px;
    }
    button:hover { background: #eef5fa; }
    button.primary { background: var(--brand); color: #fff; border-color: var(--brand); }

    table { width: 100%; border-collapse: collapse; }
    th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--line-soft); }
    th { background: var(--head); font-weight: 600; }
    tbody tr { cursor: pointer; }
    tbody tr:hover { background: #f2f8fc; }
    tbody tr.selected { background: #e0f0fa; }

    .score-pill {
      display: inline-block;
      min-width: 42px;
      text-align: center;
      border-radius: 10px;
      padding: 1px 8px;
      color: #fff;
      font-weight: 600;
    }
    .score-pill.medium { color: #333; }

    .legend { display: flex; gap: 14px; flex-wrap: wrap; margin-bottom: 8px; }
    .legend-item { display: flex; align-items: center; gap: 6px; font-size: 12px; }
    .legend-color { width: 14px; height: 14px; border-radius: 3px; }

    .bars { display: flex; flex-direction: column; gap: 6px; }
    .bar-row { display: grid; grid-template-columns: 110px 1fr 40px; align-items: center; gap: 8px; }
    .bar-track { background: var(--line-soft); border-radius: 3px; height: 16px; }
    .bar-fill { height: 100%; border-radius: 3px; background: var(--brand-2); }

    canvas { max-width: 100%; }

    .detail-placeholder { color: var(--muted); padding: 20px 0; text-align: center; }

    .progress-bar { height: 8px; border-radius: 4px; background-color: #e9ecef; }
    .progress-fill { height: 100%; border-radius: 4px; }

    .category-pill {
      display: inline-block;
      border-radius: 12px;
      padding: 2px 12px;
      color: #fff;
      font-size: 13px;
      font-weight: 600;
    }
    .category-pill.medium { color: #333; }

    .factor { display: flex; align-items: center; gap: 10px; margin-bottom: 8px; }
    .factor .glyph { font-size: 22px; }
    .factor .name { font-weight: 600; font-size: 13px; }
    .factor .sentence { color: var(--muted); font-size: 12px; }

    .team-box {
      background: #f8fafc;
      border: 1px solid var(--line-soft);
      border-radius: 6px;
      padding: 10px 12px;
      margin-top: 10px;
    }
    .team-box .team-name { font-weight: 600; font-size: 14px; }
    .team-box .team-title { color: var(--muted); font-size: 12px; }

    footer { color: var(--muted); font-size: 12px; padding: 10px 0 24px; }
  </style>
</head>
<body>
  <header>
    <div class="container header-inner">
      <div class="navbar-brand">🐾 Shelter Pet <strong>Priority Board</strong></div>
      <div class="navbar-note">Surfaces the pets that need the most attention first.</div>
    </div>
  </header>
  <div class="risk-note"><b>Note:</b> "High Risk" means a pet is at a high risk of NOT being adopted.</div>

  <main>
    <div class="container">
      <div id="load-banner" class="banner"></div>

      <div class="layout">
        <div>
          <div class="card">
            <h2>Filter Options</h2>
            <div id="type-filters"></div>
            <div class="filter-actions">
              <button id="apply-filters" class="primary">Apply</button>
              <button id="select-all">All</button>
              <button id="select-none">None</button>
            </div>
            <div class="hint">Empty selection shows an empty board.</div>
          </div>
          <div class="card">
            <h2>Data</h2>
            <div id="snapshot-info" class="hint">Not loaded yet.</div>
            <div class="filter-actions">
              <button id="refresh-snapshot">Refresh snapshot</button>
            </div>
          </div>
          <div class="card">
            <h2>Legend</h2>
            <div id="legend" class="legend"></div>
          </div>
        </div>

        <div>
          <div class="card">
            <h2>Triage List</h2>
            <div class="hint">Click a row to view pet details. Worst scores first.</div>
            <table>
              <thead>
                <tr><th>Pet ID</th><th>Score</th><th>Primary Concern</th></tr>
              </thead>
              <tbody id="triage-body"></tbody>
            </table>
          </div>
          <div class="card">
            <h2>Pets by Adoptability</h2>
            <div id="category-chart" class="bars"></div>
          </div>
          <div class="card" id="stay-card" style="display:none">
            <h2>Pets by Predicted Stay</h2>
            <div id="stay-chart" class="bars"></div>
          </div>
        </div>

        <div>
          <div class="card">
            <h2>Pet Details</h2>
            <div id="detail-panel">
              <div class="detail-placeholder">Click on a row to view pet details.</div>
            </div>
          </div>
          <div class="card">
            <h2>Distribution of Adoption Scores</h2>
            <canvas id="score-hist" width="560" height="220"></canvas>
            <div class="hint">Source: <span class="mono">/api/v1/summary</span></div>
          </div>
        </div>
      </div>

      <footer>
        Predictions are produced by the offline scoring pipeline and refreshed per session.
      </footer>
    </div>
  </main>

  <script>
    function q(sel) { return document.querySelector(sel); }

    async function getJSON(url) {
      const r = await fetch(url);
      const body = await r.json();
      if (!r.ok) {
        const err = new Error(body && body.error ? body.error : ('HTTP ' + r.status));
        err.status = r.status;
        throw err;
      }
      return body;
    }

    async function sendJSON(url, method, payload) {
      const r = await fetch(url, {
        method: method,
        headers: { 'Content-Type': 'application/json' },
        body: payload === undefined ? undefined : JSON.stringify(payload)
      });
      const body = await r.json();
      if (!r.ok) {
        throw new Error(body && body.error ? body.error : ('HTTP ' + r.status));
      }
      return body;
    }

    let thresholds = null;
    let selectedId = '';

    function showBanner(msg) {
      const el = q('#load-banner');
      el.textContent = msg;
      el.classList.add('show');
    }

    function hideBanner() {
      q('#load-banner').classList.remove('show');
    }

    function pillClass(category) {
      if (category === 'Medium Risk') { return 'score-pill medium'; }
      return 'score-pill';
    }

    function renderLegend() {
      if (!thresholds) { return; }
      const items = [
        { label: 'High Risk (< ' + thresholds.high_below + ')', color: thresholds.colors.high },
        { label: 'Medium Risk (< ' + thresholds.medium_below + ')', color: thresholds.colors.medium },
        { label: 'Low Risk', color: thresholds.colors.low }
      ];
      q('#legend').innerHTML = items.map(it =>
        '<div class="legend-item"><div class="legend-color" style="background:' + it.color + '"></div>' + it.label + '</div>'
      ).join('');
    }

    function renderFilters(available, selected) {
      const chosen = new Set(selected);
      q('#type-filters').innerHTML = available.map(t =>
        '<label class="filter-item"><input type="checkbox" value="' + t + '"' +
        (chosen.has(t) ? ' checked' : '') + '> ' + t + '</label>'
      ).join('') || '<div class="hint">No animal types in snapshot.</div>';
    }

    function renderTriage(items, meta) {
      selectedId = meta.selected_id || '';
      const body = q('#triage-body');
      if (!items.length) {
        body.innerHTML = '<tr><td colspan="3" class="detail-placeholder">No pets match the current filter.</td></tr>';
        return;
      }
      body.innerHTML = items.map(it =>
        '<tr data-id="' + it.id + '"' + (it.id === selectedId ? ' class="selected"' : '') + '>' +
        '<td>#' + it.id + '</td>' +
        '<td><span class="' + pillClass(it.category) + '" style="background:' + it.color + '">' + it.score + '</span></td>' +
        '<td>' + (it.primary_concern || '—') + '</td>' +
        '</tr>'
      ).join('');

      body.querySelectorAll('tr[data-id]').forEach(tr => {
        tr.addEventListener('click', async () => {
          await sendJSON('/api/v1/session/selection', 'PUT', { id: tr.dataset.id });
          await Promise.all([loadTriage(), loadDetail(tr.dataset.id)]);
        });
      });
    }

    function barRows(rows, colorOf) {
      const max = Math.max(1, ...rows.map(r => r.count));
      return rows.map(r =>
        '<div class="bar-row"><div>' + r.label + '</div>' +
        '<div class="bar-track"><div class="bar-fill" style="width:' + Math.round(100 * r.count / max) + '%;background:' + colorOf(r) + '"></div></div>' +
        '<div>' + r.count + '</div></div>'
      ).join('');
    }

    function renderSummary(summary) {
      q('#category-chart').innerHTML = barRows(
        summary.categories.map(c => ({ label: c.category, count: c.count, color: c.color })),
        r => r.color
      );

      if (summary.stay) {
        q('#stay-card').style.display = '';
        q('#stay-chart').innerHTML = barRows(
          summary.stay.map(s => ({ label: s.bucket, count: s.count })),
          () => 'var(--brand-2)'
        );
      } else {
        q('#stay-card').style.display = 'none';
      }

      drawHistogram(q('#score-hist'), summary.histogram || []);
    }

    function drawHistogram(canvas, bins) {
      const c = canvas.getContext('2d');
      const w = canvas.width, h = canvas.height;
      c.clearRect(0, 0, w, h);
      if (!bins.length) { return; }

      const max = Math.max(1, ...bins.map(b => b.count));
      const pad = 24;
      const bw = (w - pad * 2) / bins.length;

      c.strokeStyle = '#ccc';
      c.beginPath();
      c.moveTo(pad, h - pad);
      c.lineTo(w - pad, h - pad);
      c.stroke();

      bins.forEach((b, i) => {
        const bh = Math.round((h - pad * 2) * b.count / max);
        c.fillStyle = '#0971b2';
        c.fillRect(pad + i * bw + 1, h - pad - bh, Math.max(1, bw - 2), bh);
      });

      c.fillStyle = '#777';
      c.font = '10px sans-serif';
      c.fillText(bins[0].label.split('-')[0], pad, h - 8);
      c.fillText(bins[bins.length - 1].label.split('-')[1] || '', w - pad - 18, h - 8);
    }

    function renderDetail(detail) {
      const panel = q('#detail-panel');
      if (!detail || !detail.found) {
        panel.innerHTML = '<div class="detail-placeholder">' +
          ((detail && detail.message) || 'Click on a row to view pet details.') + '</div>';
        return;
      }

      const pillCls = detail.category === 'Medium Risk' ? 'category-pill medium' : 'category-pill';
      const domain = thresholds && thresholds.scale === 'probability' ? 1 : 100;
      const pct = Math.max(0, Math.min(100, Math.round(100 * detail.score / domain)));

      let html =
        '<div class="hint">Pet ID: <span class="mono">#' + detail.id + '</span>' +
        (detail.animal_type ? ' · ' + detail.animal_type : '') +
        (detail.intake_date ? ' · intake ' + detail.intake_date : '') + '</div>' +
        '<h3 style="margin:8px 0 4px">Adoption Score: ' + detail.score + '</h3>' +
        '<div class="progress-bar"><div class="progress-fill" style="width:' + pct + '%;background:' + detail.color + '"></div></div>' +
        '<div style="margin:10px 0"><span class="' + pillCls + '" style="background:' + detail.color + '">' + detail.category + '</span></div>';

      if (detail.recommended_team) {
        html += '<div class="team-box"><div class="team-name">' + detail.recommended_team + '</div>' +
          '<div class="team-title">Recommended Team</div></div>';
      }

      html += '<h4 style="margin:14px 0 8px">Top Factors Affecting Score</h4>';
      if (detail.factors && detail.factors.length) {
        html += detail.factors.map(f =>
          '<div class="factor"><div class="glyph">' + f.glyph + '</div><div>' +
          '<div class="name">' + f.feature + '</div>' +
          '<div class="sentence">' + f.sentence + '</div>' +
          '</div></div>'
        ).join('');
      } else {
        html += '<div class="hint">No attribution factors for this prediction.</div>';
      }

      panel.innerHTML = html;
    }

    async function loadDetail(id) {
      if (!id) {
        renderDetail(null);
        return;
      }
      try {
        const res = await getJSON('/api/v1/animals/' + encodeURIComponent(id) + '/detail');
        renderDetail(res.data);
      } catch (e) {
        renderDetail(null);
      }
    }

    async function loadTriage() {
      const res = await getJSON('/api/v1/triage');
      renderTriage(res.data || [], res.meta || {});
    }

    async function loadSummary() {
      const res = await getJSON('/api/v1/summary');
      renderSummary(res.data);
    }

    async function loadSnapshotInfo() {
      const res = await getJSON('/api/v1/snapshot');
      const d = res.data || {};
      if (d.loaded) {
        q('#snapshot-info').innerHTML = 'Loaded <b>' + d.row_count + '</b> rows from <span class="mono">' +
          (d.source || '?') + '</span>' + (d.rows_skipped ? ' (' + d.rows_skipped + ' skipped)' : '');
      } else {
        q('#snapshot-info').textContent = d.error || 'Not loaded yet.';
      }
    }

    async function loadFilters() {
      const res = await getJSON('/api/v1/session/filters');
      renderFilters(res.data.available_types || [], res.data.animal_types || []);
    }

    async function refreshAll() {
      try {
        const settings = await getJSON('/api/v1/settings/risk-thresholds');
        thresholds = settings.data;
        renderLegend();

        await Promise.all([loadFilters(), loadTriage(), loadSummary(), loadSnapshotInfo()]);
        hideBanner();

        const filters = await getJSON('/api/v1/session/filters');
        await loadDetail(filters.data.selected_id);
      } catch (e) {
        showBanner('Data could not be loaded. ' + e.message);
        renderTriage([], {});
        renderSummary({ categories: [], histogram: [] });
        renderDetail(null);
        loadSnapshotInfo().catch(() => {});
      }
    }

    q('#apply-filters').addEventListener('click', async () => {
      const types = Array.from(document.querySelectorAll('#type-filters input:checked')).map(i => i.value);
      await sendJSON('/api/v1/session/filters', 'PUT', { animal_types: types });
      await refreshAll();
    });

    q('#select-all').addEventListener('click', async () => {
      await sendJSON('/api/v1/session/filters', 'PUT', { animal_types: null });
      await refreshAll();
    });

    q('#select-none').addEventListener('click', async () => {
      await sendJSON('/api/v1/session/filters', 'PUT', { animal_types: [] });
      await refreshAll();
    });

    q('#refresh-snapshot').addEventListener('click', async () => {
      try {
        await sendJSON('/api/v1/snapshot/refresh', 'POST');
      } catch (e) {
        showBanner('Data could not be loaded. ' + e.message);
      }
      await refreshAll();
    });

    refreshAll();
  </script>
</body>
</html>
`
